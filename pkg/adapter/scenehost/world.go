// 指示: miu200521358
package scenehost

import (
	"github.com/miu200521358/mu_rig2scene/pkg/usecase/port/rhost"
	"gonum.org/v1/gonum/spatial/r3"
)

// ColliderKind はコライダ形状種別を表す。
type ColliderKind string

const (
	// ColliderKindSphere は球コライダを表す。
	ColliderKindSphere ColliderKind = "sphere"
	// ColliderKindBox は箱コライダを表す。
	ColliderKindBox ColliderKind = "box"
	// ColliderKindCapsule はカプセルコライダを表す。
	ColliderKindCapsule ColliderKind = "capsule"
)

// Collider はノードへ取り付けた衝突形状を表す。
type Collider struct {
	Kind        ColliderKind
	Radius      float64
	Height      float64
	FullExtents r3.Vec
}

// RigidBody はノードへ取り付けた剛体コンポーネントを表す。
type RigidBody struct {
	Spec rhost.RigidBodySpec
}

// Joint はノードへ取り付けた6自由度ジョイントを表す。
type Joint struct {
	Spec rhost.JointSpec
}

// World はメモリ内シーングラフとコンポーネント格納を表す。
// rhost.IPhysicsHost の参照実装であり、テストとCLIの検査用成果物を兼ねる。
type World struct {
	roots       []*Node
	colliders   map[*Node][]Collider
	rigidBodies map[*Node]*RigidBody
	joints      map[*Node][]Joint
	layers      map[*Node]string
}

// NewWorld はWorldを生成する。
func NewWorld() *World {
	return &World{
		colliders:   map[*Node][]Collider{},
		rigidBodies: map[*Node]*RigidBody{},
		joints:      map[*Node][]Joint{},
		layers:      map[*Node]string{},
	}
}

// NewNode は親なしの新規ノードを生成する。
func (w *World) NewNode(name string) rhost.INode {
	node := &Node{name: name, localRotation: quatFromEulerDeg(r3.Vec{})}
	w.roots = append(w.roots, node)
	return node
}

// Roots はルートノード一覧を返す。
func (w *World) Roots() []rhost.INode {
	roots := make([]rhost.INode, 0, len(w.roots))
	for _, root := range w.roots {
		roots = append(roots, root)
	}
	return roots
}

// SetParent は親子関係を付け替える。keepWorld 時はシーン基準姿勢を維持する。
func (w *World) SetParent(child rhost.INode, parent rhost.INode, keepWorld bool) {
	childNode := w.asNode(child)
	if childNode == nil {
		return
	}
	var parentNode *Node
	if parent != nil {
		parentNode = w.asNode(parent)
		if parentNode == nil {
			return
		}
	}

	worldPosition, worldRotation := childNode.worldTransform()

	w.detach(childNode)
	childNode.parent = parentNode
	if parentNode == nil {
		w.roots = append(w.roots, childNode)
	} else {
		parentNode.children = append(parentNode.children, childNode)
	}

	if keepWorld {
		childNode.setWorldTransform(worldPosition, worldRotation)
	}
}

// Destroy はノードと配下のコンポーネントをシーンから取り除く。
func (w *World) Destroy(node rhost.INode) {
	target := w.asNode(node)
	if target == nil {
		return
	}
	w.detach(target)
	w.removeComponents(target)
}

// AddSphereCollider は球コライダを取り付ける。
func (w *World) AddSphereCollider(node rhost.INode, radius float64) {
	target := w.asNode(node)
	if target == nil {
		return
	}
	w.colliders[target] = append(w.colliders[target], Collider{Kind: ColliderKindSphere, Radius: radius})
}

// AddBoxCollider は箱コライダを取り付ける(full extents指定)。
func (w *World) AddBoxCollider(node rhost.INode, fullExtents r3.Vec) {
	target := w.asNode(node)
	if target == nil {
		return
	}
	w.colliders[target] = append(w.colliders[target], Collider{Kind: ColliderKindBox, FullExtents: fullExtents})
}

// AddCapsuleCollider はローカルY軸向きのカプセルコライダを取り付ける。
func (w *World) AddCapsuleCollider(node rhost.INode, radius float64, height float64) {
	target := w.asNode(node)
	if target == nil {
		return
	}
	w.colliders[target] = append(w.colliders[target], Collider{Kind: ColliderKindCapsule, Radius: radius, Height: height})
}

// HasRigidBody はノードが剛体コンポーネントを持つか判定する。
func (w *World) HasRigidBody(node rhost.INode) bool {
	target := w.asNode(node)
	if target == nil {
		return false
	}
	_, exists := w.rigidBodies[target]
	return exists
}

// AddRigidBody は剛体コンポーネントを取り付ける。既存剛体は上書きしない。
func (w *World) AddRigidBody(node rhost.INode, spec rhost.RigidBodySpec) {
	target := w.asNode(node)
	if target == nil {
		return
	}
	if _, exists := w.rigidBodies[target]; exists {
		return
	}
	w.rigidBodies[target] = &RigidBody{Spec: spec}
}

// AddJoint は6自由度ジョイントを取り付ける。
func (w *World) AddJoint(node rhost.INode, spec rhost.JointSpec) {
	target := w.asNode(node)
	if target == nil {
		return
	}
	w.joints[target] = append(w.joints[target], Joint{Spec: spec})
}

// SetLayer はノードの物理レイヤーを設定する。
func (w *World) SetLayer(node rhost.INode, layer string) {
	target := w.asNode(node)
	if target == nil {
		return
	}
	w.layers[target] = layer
}

// Colliders はノードのコライダ一覧を返す。
func (w *World) Colliders(node rhost.INode) []Collider {
	target := w.asNode(node)
	if target == nil {
		return nil
	}
	return w.colliders[target]
}

// RigidBody はノードの剛体コンポーネントを返す。未取付は nil。
func (w *World) RigidBody(node rhost.INode) *RigidBody {
	target := w.asNode(node)
	if target == nil {
		return nil
	}
	return w.rigidBodies[target]
}

// Joints はノードのジョイント一覧を返す。
func (w *World) Joints(node rhost.INode) []Joint {
	target := w.asNode(node)
	if target == nil {
		return nil
	}
	return w.joints[target]
}

// Layer はノードの物理レイヤーを返す。未設定は空文字。
func (w *World) Layer(node rhost.INode) string {
	target := w.asNode(node)
	if target == nil {
		return ""
	}
	return w.layers[target]
}

// asNode はポートのノードを実装型へ解決する。
func (w *World) asNode(node rhost.INode) *Node {
	if node == nil {
		return nil
	}
	resolved, ok := node.(*Node)
	if !ok {
		return nil
	}
	return resolved
}

// detach はノードを現在の親またはルート一覧から切り離す。
func (w *World) detach(node *Node) {
	if node.parent != nil {
		siblings := node.parent.children
		for i, sibling := range siblings {
			if sibling == node {
				node.parent.children = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
		node.parent = nil
		return
	}
	for i, root := range w.roots {
		if root == node {
			w.roots = append(w.roots[:i], w.roots[i+1:]...)
			break
		}
	}
}

// removeComponents はノードと配下ノードのコンポーネント登録を削除する。
func (w *World) removeComponents(node *Node) {
	delete(w.colliders, node)
	delete(w.rigidBodies, node)
	delete(w.joints, node)
	delete(w.layers, node)
	for _, child := range node.children {
		w.removeComponents(child)
	}
}
