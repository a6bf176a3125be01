// Package extractor runs the external pose extractor and loads the keypoint
// archive it produces.
//
// The extractor is any command that accepts `<args...> <video> <output>` and
// writes a [T, 33, 3] keypoints archive (.npz or .json) to output. Exit status
// 3, or an archive with zero frames, means no pose was detected in the video.
package extractor
