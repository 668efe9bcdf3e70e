// 指示: miu200521358
package rig

const (
	// RigWarningRawReportKey は合成時警告ID集合を保持するレポートのキー。
	RigWarningRawReportKey = "MU_RIG2SCENE_warnings"

	// RigWarningBoneUnresolved は剛体の参照ボーンが骨格内に見つからない警告。
	RigWarningBoneUnresolved = "RigWarningBoneUnresolved"
	// RigWarningJointChildUnresolved はジョイントの子ボーンが骨格内に見つからない警告。
	RigWarningJointChildUnresolved = "RigWarningJointChildUnresolved"
	// RigWarningJointParentUnresolved はジョイントの親ボーンが骨格内に見つからない警告。
	RigWarningJointParentUnresolved = "RigWarningJointParentUnresolved"
	// RigWarningJointBodyMissing はジョイント対象ノードが剛体を持たない警告。
	RigWarningJointBodyMissing = "RigWarningJointBodyMissing"
	// RigWarningShapeUnknown は未知の形状値で剛体を読み飛ばした警告。
	RigWarningShapeUnknown = "RigWarningShapeUnknown"
)
