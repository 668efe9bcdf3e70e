// 指示: miu200521358
package io_scene

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/miu200521358/mu_rig2scene/pkg/usecase/port/rhost"
	"gonum.org/v1/gonum/spatial/r3"
)

// writeSceneFile は骨格シーンJSONを一時ファイルへ書き出す。
func writeSceneFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skeleton.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("fixture write failed: %v", err)
	}
	return path
}

// findChild は名前一致の直接の子を返す。
func findChild(t *testing.T, parent rhost.INode, name string) rhost.INode {
	t.Helper()
	for _, child := range parent.Children() {
		if child.Name() == name {
			return child
		}
	}
	t.Fatalf("child %q not found under %q", name, parent.Name())
	return nil
}

func TestCanLoadAcceptsJSONOnly(t *testing.T) {
	rep := NewSceneRepository()
	if !rep.CanLoad("model.json") || !rep.CanLoad("MODEL.JSON") {
		t.Fatalf("json paths should be loadable")
	}
	if rep.CanLoad("model.gltf") || rep.CanLoad("model") {
		t.Fatalf("non-json paths should be rejected")
	}
}

func TestLoadBuildsHierarchy(t *testing.T) {
	path := writeSceneFile(t, `{
  "name": "モデル",
  "nodes": [
    {"name": "Hips", "translation": [0, 1, 0], "children": [1]},
    {"name": "Spine", "translation": [0, 0.2, 0], "rotationDeg": [0, 90, 0]}
  ]
}`)

	rep := NewSceneRepository()
	world, root, err := rep.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if root.Name() != "モデル" {
		t.Fatalf("root name mismatch: %s", root.Name())
	}
	if len(world.Roots()) != 1 {
		t.Fatalf("root count mismatch: %d", len(world.Roots()))
	}

	hips := findChild(t, root, "Hips")
	spine := findChild(t, hips, "Spine")
	pos := spine.WorldPosition()
	if math.Abs(pos.X-0) > 1e-9 || math.Abs(pos.Y-1.2) > 1e-9 || math.Abs(pos.Z-0) > 1e-9 {
		t.Fatalf("spine world position mismatch: %+v", pos)
	}
	local := spine.LocalRotationDeg()
	if math.Abs(local.Y-90) > 1e-6 {
		t.Fatalf("spine local rotation mismatch: %+v", local)
	}
}

func TestLoadParentsOrphansUnderRoot(t *testing.T) {
	path := writeSceneFile(t, `{
  "nodes": [
    {"name": "Hips", "children": [1]},
    {"name": "Spine"},
    {"name": "Prop"}
  ]
}`)

	rep := NewSceneRepository()
	_, root, err := rep.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if root.Name() != "skeleton" {
		t.Fatalf("unnamed scene should fall back to default root name: %s", root.Name())
	}
	// 誰からも参照されないノードはルート直下に並ぶ。
	if len(root.Children()) != 2 {
		t.Fatalf("root should adopt unparented nodes: got=%d", len(root.Children()))
	}
	findChild(t, root, "Hips")
	findChild(t, root, "Prop")
}

func TestLoadRejectsMalformedScenes(t *testing.T) {
	cases := []struct {
		name    string
		content string
		message string
	}{
		{
			name:    "child index out of range",
			content: `{"nodes": [{"name": "Hips", "children": [5]}]}`,
			message: "範囲外",
		},
		{
			name:    "node with two parents",
			content: `{"nodes": [{"name": "A", "children": [2]}, {"name": "B", "children": [2]}, {"name": "C"}]}`,
			message: "複数の親",
		},
		{
			name:    "translation with wrong arity",
			content: `{"nodes": [{"name": "Hips", "translation": [1, 2]}]}`,
			message: "要素数が不正",
		},
		{
			name:    "broken json",
			content: `{"nodes": [`,
			message: "解析に失敗",
		},
	}
	rep := NewSceneRepository()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeSceneFile(t, c.content)
			_, _, err := rep.Load(path)
			if err == nil {
				t.Fatalf("malformed scene should fail")
			}
			if !strings.Contains(err.Error(), c.message) {
				t.Fatalf("error message mismatch: %v", err)
			}
		})
	}
}

func TestLoadRejectsNonJSONExtension(t *testing.T) {
	rep := NewSceneRepository()
	if _, _, err := rep.Load(filepath.Join(t.TempDir(), "skeleton.csv")); err == nil {
		t.Fatalf("non-json extension should fail before reading")
	}
}

func TestSaveExportsComponents(t *testing.T) {
	path := writeSceneFile(t, `{
  "name": "モデル",
  "nodes": [
    {"name": "Hips", "children": [1]},
    {"name": "Spine"}
  ]
}`)
	rep := NewSceneRepository()
	world, root, err := rep.Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	hips := findChild(t, root, "Hips")
	spine := findChild(t, hips, "Spine")
	world.AddSphereCollider(spine, 0.25)
	world.AddRigidBody(hips, rhost.RigidBodySpec{Kinematic: true})
	world.AddJoint(spine, rhost.JointSpec{
		Name:          "SpineJ",
		ConnectedNode: hips,
		AngularMotion: [3]rhost.Motion{rhost.MotionLimited, rhost.MotionLocked, rhost.MotionLocked},
	})
	world.SetLayer(spine, "cloth")
	spine.SetLocalPosition(r3.Vec{Y: 0.5})

	outPath := filepath.Join(t.TempDir(), "out.json")
	if err := rep.Save(outPath, world, root); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output read failed: %v", err)
	}
	exported := exportedNode{}
	if err := json.Unmarshal(b, &exported); err != nil {
		t.Fatalf("output parse failed: %v", err)
	}

	if exported.Name != "モデル" || len(exported.Children) != 1 {
		t.Fatalf("exported root mismatch: %+v", exported)
	}
	hipsOut := exported.Children[0]
	if hipsOut.RigidBody == nil || !hipsOut.RigidBody.Kinematic {
		t.Fatalf("hips rigid body should be exported: %+v", hipsOut.RigidBody)
	}
	if len(hipsOut.Children) != 1 {
		t.Fatalf("hips children mismatch: %+v", hipsOut.Children)
	}
	spineOut := hipsOut.Children[0]
	if spineOut.Layer != "cloth" {
		t.Fatalf("spine layer mismatch: %+v", spineOut)
	}
	if len(spineOut.Colliders) != 1 || spineOut.Colliders[0].Kind != "sphere" || spineOut.Colliders[0].Radius != 0.25 {
		t.Fatalf("spine collider mismatch: %+v", spineOut.Colliders)
	}
	if len(spineOut.Joints) != 1 || spineOut.Joints[0].ConnectedNode != "Hips" {
		t.Fatalf("spine joint mismatch: %+v", spineOut.Joints)
	}
	if spineOut.Joints[0].AngularMotion[0] != "Limited" || spineOut.Joints[0].AngularMotion[1] != "Locked" {
		t.Fatalf("joint motion export mismatch: %+v", spineOut.Joints[0])
	}
	if spineOut.LocalPosition[1] != 0.5 {
		t.Fatalf("spine local position mismatch: %+v", spineOut.LocalPosition)
	}
}

func TestSaveRequiresScene(t *testing.T) {
	rep := NewSceneRepository()
	if err := rep.Save(filepath.Join(t.TempDir(), "out.json"), nil, nil); err == nil {
		t.Fatalf("missing scene should fail")
	}
}
