// Package preflight provides readiness checks for the directories, external
// programs and local state swingmatch depends on.
//
// The `swingmatch doctor` command runs RunAll and prints one line per check.
// The extract command calls CheckExtractor before launching a long pose
// extraction so a misconfigured command fails fast.
package preflight
