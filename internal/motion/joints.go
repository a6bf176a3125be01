package motion

import "strconv"

// Joint indexes a MediaPipe pose landmark.
type Joint int

// MediaPipe pose landmarks in extractor order.
const (
	Nose Joint = iota
	LeftEyeInner
	LeftEye
	LeftEyeOuter
	RightEyeInner
	RightEye
	RightEyeOuter
	LeftEar
	RightEar
	MouthLeft
	MouthRight
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftPinky
	RightPinky
	LeftIndex
	RightIndex
	LeftThumb
	RightThumb
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
	LeftHeel
	RightHeel
	LeftFootIndex
	RightFootIndex
)

// JointCount is the number of landmarks emitted by the pose extractor.
const JointCount = 33

// Dimensions is the number of coordinates stored per joint.
const Dimensions = 3

// Axis selects one coordinate of a joint position.
type Axis int

const (
	AxisX Axis = iota
	AxisY      // vertical in image space
	AxisZ
)

var jointNames = [JointCount]string{
	"nose", "left_eye_inner", "left_eye", "left_eye_outer",
	"right_eye_inner", "right_eye", "right_eye_outer",
	"left_ear", "right_ear", "mouth_left", "mouth_right",
	"left_shoulder", "right_shoulder", "left_elbow", "right_elbow",
	"left_wrist", "right_wrist", "left_pinky", "right_pinky",
	"left_index", "right_index", "left_thumb", "right_thumb",
	"left_hip", "right_hip", "left_knee", "right_knee",
	"left_ankle", "right_ankle", "left_heel", "right_heel",
	"left_foot_index", "right_foot_index",
}

func (j Joint) String() string {
	if j >= 0 && int(j) < JointCount {
		return jointNames[j]
	}
	return "joint_" + strconv.Itoa(int(j))
}

// Channel returns the flattened column index of the joint's axis.
func (j Joint) Channel(axis Axis) int {
	return int(j)*Dimensions + int(axis)
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "axis_" + strconv.Itoa(int(a))
	}
}
