// 指示: miu200521358
// Package rinput は記述子入力の読み込み契約を提供する。
package rinput

import "github.com/miu200521358/mu_rig2scene/pkg/domain/rig"

// IRigReader は記述子CSV3表の読み込み契約を表す。
type IRigReader interface {
	// ParseBones はボーン表を読み込む。
	ParseBones(text string) ([]rig.BoneRecord, error)
	// ParseRigidBodies は剛体表を読み込み、ボーン表とのindex対応を解決する。
	ParseRigidBodies(text string, bones []rig.BoneRecord) ([]rig.RigidBodyRecord, error)
	// ParseJoints はジョイント表を読み込む。
	ParseJoints(text string) ([]rig.JointRecord, error)
}
