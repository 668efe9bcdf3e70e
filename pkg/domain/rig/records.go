// 指示: miu200521358
// Package rig は物理リグ記述子のドメインモデルを提供する。
package rig

import "gonum.org/v1/gonum/spatial/r3"

// Shape は剛体の衝突形状種別を表す。
type Shape int

const (
	// ShapeSphere は球形状を表す。
	ShapeSphere Shape = 0
	// ShapeBox は箱形状を表す。
	ShapeBox Shape = 1
	// ShapeCapsule はカプセル形状を表す。
	ShapeCapsule Shape = 2
)

// String は形状名を返す。
func (s Shape) String() string {
	switch s {
	case ShapeSphere:
		return "Sphere"
	case ShapeBox:
		return "Box"
	case ShapeCapsule:
		return "Capsule"
	}
	return "Unknown"
}

// Valid は既知の形状値か判定する。
func (s Shape) Valid() bool {
	return s >= ShapeSphere && s <= ShapeCapsule
}

// Kind は剛体の物理演算種別を表す。
type Kind int

const (
	// KindBoneFollower はボーン追従剛体を表す。
	KindBoneFollower Kind = 0
	// KindDynamic は物理演算剛体を表す。
	KindDynamic Kind = 1
	// KindDynamicFollowsBone は物理演算+ボーン位置合わせ剛体を表す。
	KindDynamicFollowsBone Kind = 2
)

// String は剛体種別名を返す。
func (k Kind) String() string {
	switch k {
	case KindBoneFollower:
		return "BoneFollower"
	case KindDynamic:
		return "Dynamic"
	case KindDynamicFollowsBone:
		return "DynamicFollowsBone"
	}
	return "Unknown"
}

// BoneIndexUnset は剛体がボーン一覧と対応しない場合のindex値。
const BoneIndexUnset = -1

// BoneRecord は骨格1ボーンの名前対応を表す。
// 読込順に0始まりのindexが振られ、剛体のボーン参照解決にのみ使う。
type BoneRecord struct {
	Index       int
	NameNative  string
	NameDisplay string
}

// RigidBodyRecord は1ボーンへ取り付ける物理プロキシ剛体を表す。
// Size の有効成分は Shape に依存する
// (球: Xのみ、箱: 3成分とも半寸法、カプセル: X=半径 Y=円筒部追加長)。
type RigidBodyRecord struct {
	Name           string
	BoneName       string
	BoneIndex      int
	Kind           Kind
	Shape          Shape
	Size           r3.Vec
	Position       r3.Vec
	RotationDeg    r3.Vec
	Mass           float64
	LinearDamping  float64
	AngularDamping float64
}

// JointRecord は剛体2つを接続する拘束ジョイントを表す。
// 移動制限とばね定数は読込のみで、合成では未消費(ソフト制約拡張用)。
type JointRecord struct {
	Name            string
	ChildBoneName   string
	ParentBoneName  string
	Position        r3.Vec
	RotationDeg     r3.Vec
	LinearLimitMin  r3.Vec
	LinearLimitMax  r3.Vec
	AngularLimitMin r3.Vec
	AngularLimitMax r3.Vec
	LinearSpring    r3.Vec
	AngularSpring   r3.Vec
}
