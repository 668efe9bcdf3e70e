// 指示: miu200521358
// Package scenehost はrhostポートのメモリ内参照実装を提供する。
// ホストエンジン非依存でユースケース層を検証するための座席となる。
package scenehost

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/miu200521358/mu_rig2scene/pkg/usecase/port/rhost"
	"gonum.org/v1/gonum/spatial/r3"
)

const gimbalLockEpsilon = 1e-9

// Node はメモリ内シーングラフの1ノードを表す。
// 姿勢は親基準の位置とクォータニオンで保持し、ワールド姿勢は親連鎖の合成で求める。
type Node struct {
	name          string
	parent        *Node
	children      []*Node
	localPosition mgl64.Vec3
	localRotation mgl64.Quat
}

// Name はノード名を返す。
func (n *Node) Name() string {
	return n.name
}

// Parent は親ノードを返す。ルートは nil。
func (n *Node) Parent() rhost.INode {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Children は子ノード一覧を返す。
func (n *Node) Children() []rhost.INode {
	children := make([]rhost.INode, 0, len(n.children))
	for _, child := range n.children {
		children = append(children, child)
	}
	return children
}

// LocalPosition は親基準の位置を返す。
func (n *Node) LocalPosition() r3.Vec {
	return fromMglVec(n.localPosition)
}

// LocalRotationDeg は親基準の回転をオイラー角(度)で返す。
func (n *Node) LocalRotationDeg() r3.Vec {
	return eulerDegFromQuat(n.localRotation)
}

// SetLocalPosition は親基準の位置を設定する。
func (n *Node) SetLocalPosition(position r3.Vec) {
	n.localPosition = toMglVec(position)
}

// SetLocalRotationDeg は親基準の回転をオイラー角(度)で設定する。
func (n *Node) SetLocalRotationDeg(rotationDeg r3.Vec) {
	n.localRotation = quatFromEulerDeg(rotationDeg)
}

// WorldPosition はシーン基準の位置を返す。
func (n *Node) WorldPosition() r3.Vec {
	position, _ := n.worldTransform()
	return fromMglVec(position)
}

// WorldRotationDeg はシーン基準の回転をオイラー角(度)で返す。
func (n *Node) WorldRotationDeg() r3.Vec {
	_, rotation := n.worldTransform()
	return eulerDegFromQuat(rotation)
}

// SetWorldPosition はシーン基準の位置を設定する。回転は維持する。
func (n *Node) SetWorldPosition(position r3.Vec) {
	_, rotation := n.worldTransform()
	n.setWorldTransform(toMglVec(position), rotation)
}

// SetWorldRotationDeg はシーン基準の回転を設定する。位置は維持する。
func (n *Node) SetWorldRotationDeg(rotationDeg r3.Vec) {
	position, _ := n.worldTransform()
	n.setWorldTransform(position, quatFromEulerDeg(rotationDeg))
}

// worldTransform は親連鎖を合成したシーン基準姿勢を返す。
func (n *Node) worldTransform() (mgl64.Vec3, mgl64.Quat) {
	if n.parent == nil {
		return n.localPosition, n.localRotation
	}
	parentPosition, parentRotation := n.parent.worldTransform()
	position := parentPosition.Add(parentRotation.Rotate(n.localPosition))
	rotation := parentRotation.Mul(n.localRotation).Normalize()
	return position, rotation
}

// setWorldTransform はシーン基準姿勢から親基準姿勢を逆算して設定する。
func (n *Node) setWorldTransform(position mgl64.Vec3, rotation mgl64.Quat) {
	if n.parent == nil {
		n.localPosition = position
		n.localRotation = rotation.Normalize()
		return
	}
	parentPosition, parentRotation := n.parent.worldTransform()
	inverse := parentRotation.Inverse()
	n.localPosition = inverse.Rotate(position.Sub(parentPosition))
	n.localRotation = inverse.Mul(rotation).Normalize()
}

// toMglVec はr3ベクトルをmgl64ベクトルへ変換する。
func toMglVec(v r3.Vec) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// fromMglVec はmgl64ベクトルをr3ベクトルへ変換する。
func fromMglVec(v mgl64.Vec3) r3.Vec {
	return r3.Vec{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// quatFromEulerDeg はオイラー角(度、X→Y→Z合成)をクォータニオンへ変換する。
func quatFromEulerDeg(rotationDeg r3.Vec) mgl64.Quat {
	qx := mgl64.QuatRotate(mgl64.DegToRad(rotationDeg.X), mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(mgl64.DegToRad(rotationDeg.Y), mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(mgl64.DegToRad(rotationDeg.Z), mgl64.Vec3{0, 0, 1})
	return qx.Mul(qy).Mul(qz).Normalize()
}

// eulerDegFromQuat はクォータニオンをオイラー角(度、X→Y→Z合成)へ逆変換する。
func eulerDegFromQuat(q mgl64.Quat) r3.Vec {
	m := q.Normalize().Mat4()

	sy := m.At(0, 2)
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}

	var x, y, z float64
	if math.Abs(math.Abs(sy)-1) > gimbalLockEpsilon {
		y = math.Asin(sy)
		x = math.Atan2(-m.At(1, 2), m.At(2, 2))
		z = math.Atan2(-m.At(0, 1), m.At(0, 0))
	} else {
		// ジンバルロック時はZ=0へ縮退させる。
		y = math.Asin(sy)
		x = math.Atan2(m.At(1, 0), m.At(1, 1))
		z = 0
	}
	return r3.Vec{X: mgl64.RadToDeg(x), Y: mgl64.RadToDeg(y), Z: mgl64.RadToDeg(z)}
}
