// 指示: miu200521358
// Package io_scene は骨格シーンのJSON読み書きアダプタを提供する。
// 取込対象の骨格階層を読み込み、取込後のシーンを検査用に書き出す。
package io_scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/miu200521358/mu_rig2scene/pkg/adapter/scenehost"
	"github.com/miu200521358/mu_rig2scene/pkg/usecase/port/rhost"
	"gonum.org/v1/gonum/spatial/r3"
)

// sceneDocument は骨格シーンJSONの全体を表す。
type sceneDocument struct {
	Name  string      `json:"name"`
	Nodes []sceneNode `json:"nodes"`
}

// sceneNode は骨格シーンJSONの1ノードを表す。子はindex参照。
type sceneNode struct {
	Name        string    `json:"name"`
	Translation []float64 `json:"translation,omitempty"`
	RotationDeg []float64 `json:"rotationDeg,omitempty"`
	Children    []int     `json:"children,omitempty"`
}

// SceneRepository は骨格シーンの読み書き契約を表す。
type SceneRepository struct{}

// NewSceneRepository はSceneRepositoryを生成する。
func NewSceneRepository() *SceneRepository {
	return &SceneRepository{}
}

// CanLoad は拡張子に応じて読み込み可否を判定する。
func (r *SceneRepository) CanLoad(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// Load は骨格シーンJSONを読み込み、メモリ内シーングラフを構築する。
// 戻り値のルートノードが取込の探索起点となる。
func (r *SceneRepository) Load(path string) (*scenehost.World, rhost.INode, error) {
	if !r.CanLoad(path) {
		return nil, nil, fmt.Errorf("骨格シーンの拡張子が .json ではありません: %s", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("骨格シーンの読み取りに失敗しました: %w", err)
	}

	doc := sceneDocument{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, nil, fmt.Errorf("骨格シーンJSONの解析に失敗しました: %w", err)
	}

	world := scenehost.NewWorld()
	rootName := doc.Name
	if rootName == "" {
		rootName = "skeleton"
	}
	root := world.NewNode(rootName)

	nodes := make([]rhost.INode, len(doc.Nodes))
	for i, nodeData := range doc.Nodes {
		node := world.NewNode(nodeData.Name)
		position, err := parseVec3(nodeData.Translation, r3.Vec{}, fmt.Sprintf("nodes[%d].translation", i))
		if err != nil {
			return nil, nil, err
		}
		rotation, err := parseVec3(nodeData.RotationDeg, r3.Vec{}, fmt.Sprintf("nodes[%d].rotationDeg", i))
		if err != nil {
			return nil, nil, err
		}
		node.SetLocalPosition(position)
		node.SetLocalRotationDeg(rotation)
		nodes[i] = node
	}

	parents := make([]int, len(doc.Nodes))
	for i := range parents {
		parents[i] = -1
	}
	for parentIndex, nodeData := range doc.Nodes {
		for _, childIndex := range nodeData.Children {
			if childIndex < 0 || childIndex >= len(nodes) {
				return nil, nil, fmt.Errorf("骨格シーンの子index %d が範囲外です (nodes[%d])", childIndex, parentIndex)
			}
			if parents[childIndex] != -1 {
				return nil, nil, fmt.Errorf("骨格シーンのノード %d が複数の親から参照されています", childIndex)
			}
			parents[childIndex] = parentIndex
			world.SetParent(nodes[childIndex], nodes[parentIndex], false)
		}
	}
	for i, parentIndex := range parents {
		if parentIndex == -1 {
			world.SetParent(nodes[i], root, false)
		}
	}

	return world, root, nil
}

// Save は取込後のシーンを検査用JSONとして書き出す。
func (r *SceneRepository) Save(path string, world *scenehost.World, root rhost.INode) error {
	if world == nil || root == nil {
		return fmt.Errorf("書き出し対象のシーンが未設定です")
	}
	exported := exportNode(world, root)
	b, err := json.MarshalIndent(exported, "", "  ")
	if err != nil {
		return fmt.Errorf("シーンJSONの生成に失敗しました: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("シーンJSONの書き込みに失敗しました: %w", err)
	}
	return nil
}

// exportedNode は書き出しJSONの1ノードを表す。
type exportedNode struct {
	Name             string             `json:"name"`
	LocalPosition    [3]float64         `json:"localPosition"`
	LocalRotationDeg [3]float64         `json:"localRotationDeg"`
	Layer            string             `json:"layer,omitempty"`
	Colliders        []exportedCollider `json:"colliders,omitempty"`
	RigidBody        *exportedRigidBody `json:"rigidBody,omitempty"`
	Joints           []exportedJoint    `json:"joints,omitempty"`
	Children         []exportedNode     `json:"children,omitempty"`
}

// exportedCollider は書き出しJSONのコライダ1件を表す。
type exportedCollider struct {
	Kind        string     `json:"kind"`
	Radius      float64    `json:"radius,omitempty"`
	Height      float64    `json:"height,omitempty"`
	FullExtents [3]float64 `json:"fullExtents,omitempty"`
}

// exportedRigidBody は書き出しJSONの剛体を表す。
type exportedRigidBody struct {
	Kinematic           bool    `json:"kinematic"`
	UseGravity          bool    `json:"useGravity"`
	ContinuousDetection bool    `json:"continuousDetection"`
	Mass                float64 `json:"mass"`
	LinearDamping       float64 `json:"linearDamping"`
	AngularDamping      float64 `json:"angularDamping"`
}

// exportedJoint は書き出しJSONのジョイント1件を表す。
type exportedJoint struct {
	Name          string     `json:"name"`
	ConnectedNode string     `json:"connectedNode"`
	LinearMotion  [3]string  `json:"linearMotion"`
	AngularMotion [3]string  `json:"angularMotion"`
	AngularLimitX [2]float64 `json:"angularLimitDegX"`
	AngularLimitY float64    `json:"angularLimitDegY"`
	AngularLimitZ float64    `json:"angularLimitDegZ"`
}

// exportNode はノードとその配下を書き出し形式へ変換する。
func exportNode(world *scenehost.World, node rhost.INode) exportedNode {
	exported := exportedNode{
		Name:             node.Name(),
		LocalPosition:    vecToArray(node.LocalPosition()),
		LocalRotationDeg: vecToArray(node.LocalRotationDeg()),
		Layer:            world.Layer(node),
	}
	for _, collider := range world.Colliders(node) {
		exported.Colliders = append(exported.Colliders, exportedCollider{
			Kind:        string(collider.Kind),
			Radius:      collider.Radius,
			Height:      collider.Height,
			FullExtents: vecToArray(collider.FullExtents),
		})
	}
	if body := world.RigidBody(node); body != nil {
		exported.RigidBody = &exportedRigidBody{
			Kinematic:           body.Spec.Kinematic,
			UseGravity:          body.Spec.UseGravity,
			ContinuousDetection: body.Spec.ContinuousDetection,
			Mass:                body.Spec.Mass,
			LinearDamping:       body.Spec.LinearDamping,
			AngularDamping:      body.Spec.AngularDamping,
		}
	}
	for _, joint := range world.Joints(node) {
		connectedName := ""
		if joint.Spec.ConnectedNode != nil {
			connectedName = joint.Spec.ConnectedNode.Name()
		}
		exported.Joints = append(exported.Joints, exportedJoint{
			Name:          joint.Spec.Name,
			ConnectedNode: connectedName,
			LinearMotion:  motionToArray(joint.Spec.LinearMotion),
			AngularMotion: motionToArray(joint.Spec.AngularMotion),
			AngularLimitX: [2]float64{joint.Spec.AngularLimitLowDegX, joint.Spec.AngularLimitHighDegX},
			AngularLimitY: joint.Spec.AngularLimitDegY,
			AngularLimitZ: joint.Spec.AngularLimitDegZ,
		})
	}
	for _, child := range node.Children() {
		exported.Children = append(exported.Children, exportNode(world, child))
	}
	return exported
}

// parseVec3 は要素数0または3の配列を3次元ベクトルとして解釈する。
func parseVec3(values []float64, defaultValue r3.Vec, label string) (r3.Vec, error) {
	if len(values) == 0 {
		return defaultValue, nil
	}
	if len(values) != 3 {
		return r3.Vec{}, fmt.Errorf("骨格シーンの %s の要素数が不正です: %d", label, len(values))
	}
	return r3.Vec{X: values[0], Y: values[1], Z: values[2]}, nil
}

// vecToArray はベクトルをJSON配列形式へ変換する。
func vecToArray(v r3.Vec) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// motionToArray は可動種別3軸分を文字列配列へ変換する。
func motionToArray(motions [3]rhost.Motion) [3]string {
	return [3]string{motions[0].String(), motions[1].String(), motions[2].String()}
}
