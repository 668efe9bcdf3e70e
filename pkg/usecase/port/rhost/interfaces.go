// 指示: miu200521358
// Package rhost はホストエンジンの物理・シーングラフ操作契約を提供する。
package rhost

import "gonum.org/v1/gonum/spatial/r3"

// Motion は6自由度ジョイントの軸別可動種別を表す。
type Motion int

const (
	// MotionLocked は軸固定を表す。
	MotionLocked Motion = 0
	// MotionLimited は範囲内可動を表す。
	MotionLimited Motion = 1
)

// String は可動種別名を返す。
func (m Motion) String() string {
	switch m {
	case MotionLocked:
		return "Locked"
	case MotionLimited:
		return "Limited"
	}
	return "Unknown"
}

// INode はホストエンジンのシーングラフノード契約を表す。
// 回転はすべてオイラー角(度、XYZ順)で受け渡す。
type INode interface {
	// Name はノード名を返す。
	Name() string
	// Parent は親ノードを返す。ルートは nil。
	Parent() INode
	// Children は子ノード一覧を返す。
	Children() []INode
	// LocalPosition は親基準の位置を返す。
	LocalPosition() r3.Vec
	// LocalRotationDeg は親基準の回転を返す。
	LocalRotationDeg() r3.Vec
	// SetLocalPosition は親基準の位置を設定する。
	SetLocalPosition(position r3.Vec)
	// SetLocalRotationDeg は親基準の回転を設定する。
	SetLocalRotationDeg(rotationDeg r3.Vec)
	// WorldPosition はシーン基準の位置を返す。
	WorldPosition() r3.Vec
	// WorldRotationDeg はシーン基準の回転を返す。
	WorldRotationDeg() r3.Vec
	// SetWorldPosition はシーン基準の位置を設定する。
	SetWorldPosition(position r3.Vec)
	// SetWorldRotationDeg はシーン基準の回転を設定する。
	SetWorldRotationDeg(rotationDeg r3.Vec)
}

// RigidBodySpec は剛体コンポーネントの生成パラメータを表す。
type RigidBodySpec struct {
	Kinematic           bool
	UseGravity          bool
	ContinuousDetection bool
	Mass                float64
	LinearDamping       float64
	AngularDamping      float64
}

// JointSpec は6自由度拘束ジョイントの生成パラメータを表す。
// 移動制限とばね定数はソフト制約対応ホスト向けに保持するのみで、
// 現行の合成処理では可動判定以外に消費しない。
type JointSpec struct {
	Name          string
	ConnectedNode INode

	BreakForce  float64
	BreakTorque float64

	// 軸順は X, Y, Z。
	LinearMotion  [3]Motion
	AngularMotion [3]Motion

	AngularLimitLowDegX  float64
	AngularLimitHighDegX float64
	AngularLimitDegY     float64
	AngularLimitDegZ     float64

	LinearLimitMin r3.Vec
	LinearLimitMax r3.Vec
	LinearSpring   r3.Vec
	AngularSpring  r3.Vec
}

// IPhysicsHost はホストエンジンのノード生成と物理コンポーネント取付契約を表す。
// シーングラフ操作はスレッド安全ではなく、所有スレッド上でのみ呼び出すこと。
type IPhysicsHost interface {
	// NewNode は親なしの新規ノードを生成する。
	NewNode(name string) INode
	// SetParent は親子関係を付け替える。keepWorld 時はシーン基準姿勢を維持する。
	SetParent(child INode, parent INode, keepWorld bool)
	// Destroy はノードをシーンから取り除く。
	Destroy(node INode)

	// AddSphereCollider は球コライダを取り付ける。
	AddSphereCollider(node INode, radius float64)
	// AddBoxCollider は箱コライダを取り付ける(full extents指定)。
	AddBoxCollider(node INode, fullExtents r3.Vec)
	// AddCapsuleCollider はローカルY軸向きのカプセルコライダを取り付ける。
	// height は両端の半球キャップを含む全高。
	AddCapsuleCollider(node INode, radius float64, height float64)

	// HasRigidBody はノードが剛体コンポーネントを持つか判定する。
	HasRigidBody(node INode) bool
	// AddRigidBody は剛体コンポーネントを取り付ける。
	AddRigidBody(node INode, spec RigidBodySpec)
	// AddJoint は6自由度ジョイントを取り付ける。
	AddJoint(node INode, spec JointSpec)
	// SetLayer はノードの物理レイヤーを設定する。
	SetLayer(node INode, layer string)
}
