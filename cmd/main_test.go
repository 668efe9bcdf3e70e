// 指示: miu200521358
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseOptionsWithFlags(t *testing.T) {
	errBuf := bytes.NewBuffer(nil)
	opts, err := parseOptions([]string{
		"-bone", "bones.csv",
		"-rigid", "rigids.csv",
		"-joint", "joints.csv",
		"-skeleton", "skeleton.json",
		"-out", "scene.json",
		"-scale", "0.2",
		"-layer", "hair",
		"-verbose",
	}, errBuf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if opts.bonePath != "bones.csv" || opts.rigidPath != "rigids.csv" || opts.jointPath != "joints.csv" {
		t.Fatalf("descriptor paths mismatch: %+v", opts)
	}
	if opts.skeletonPath != "skeleton.json" || opts.outPath != "scene.json" {
		t.Fatalf("scene paths mismatch: %+v", opts)
	}
	if opts.scale != 0.2 || opts.layer != "hair" || !opts.verbose {
		t.Fatalf("tuning options mismatch: %+v", opts)
	}
}

func TestParseOptionsDefaults(t *testing.T) {
	errBuf := bytes.NewBuffer(nil)
	opts, err := parseOptions([]string{
		"-bone", "b.csv", "-rigid", "r.csv", "-joint", "j.csv", "-skeleton", "s.json",
	}, errBuf)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if opts.scale != 1.0 {
		t.Fatalf("default scale mismatch: %f", opts.scale)
	}
	if opts.layer != defaultPhysicsLayer {
		t.Fatalf("default layer mismatch: %s", opts.layer)
	}
	if opts.outPath != "" || opts.verbose {
		t.Fatalf("optional defaults mismatch: %+v", opts)
	}
}

func TestParseOptionsRequiredFlags(t *testing.T) {
	cases := []struct {
		name string
		args []string
		flag string
	}{
		{name: "missing bone", args: []string{"-rigid", "r.csv", "-joint", "j.csv", "-skeleton", "s.json"}, flag: "-bone"},
		{name: "missing rigid", args: []string{"-bone", "b.csv", "-joint", "j.csv", "-skeleton", "s.json"}, flag: "-rigid"},
		{name: "missing joint", args: []string{"-bone", "b.csv", "-rigid", "r.csv", "-skeleton", "s.json"}, flag: "-joint"},
		{name: "missing skeleton", args: []string{"-bone", "b.csv", "-rigid", "r.csv", "-joint", "j.csv"}, flag: "-skeleton"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			errBuf := bytes.NewBuffer(nil)
			_, err := parseOptions(c.args, errBuf)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), c.flag) {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRunImportsRigIntoScene(t *testing.T) {
	tempDir := t.TempDir()
	bonePath := filepath.Join(tempDir, "bones.csv")
	rigidPath := filepath.Join(tempDir, "rigids.csv")
	jointPath := filepath.Join(tempDir, "joints.csv")
	skeletonPath := filepath.Join(tempDir, "skeleton.json")
	outPath := filepath.Join(tempDir, "scene.json")

	writeTestFile(t, bonePath, strings.Join([]string{
		"; ボーン表",
		"頭,Head",
		"右髪1,Hair_R_1",
	}, "\n"))
	writeTestFile(t, rigidPath, strings.Join([]string{
		"; 剛体表",
		"剛体,頭剛体,頭,0,65535,0,0,0,0.5,0,0,0,1,0,0,0,0,1,0.5,0.5",
		"剛体,右髪剛体,右髪1,1,65534,1,0,0,0.1,0,0,0,1.2,0,0,0,0,0.3,0.5,0.5",
	}, "\n"))
	writeTestFile(t, jointPath, strings.Join([]string{
		"; ジョイント表",
		"ジョイント,右髪J,右髪1,頭,0,1.2,0,0,0,0,0,0,0,0,0,0,0,0,-10,-10,-10,10,10,10,0,0,0,0,0,0",
	}, "\n"))
	writeTestFile(t, skeletonPath, `{
  "name": "モデル",
  "nodes": [
    {"name": "頭", "translation": [0, 1.2, 0], "children": [1]},
    {"name": "右髪1", "translation": [0, 0, 0.1]}
  ]
}`)

	outBuf := bytes.NewBuffer(nil)
	errBuf := bytes.NewBuffer(nil)
	args := []string{
		"-bone", bonePath,
		"-rigid", rigidPath,
		"-joint", jointPath,
		"-skeleton", skeletonPath,
		"-out", outPath,
		"-verbose",
	}
	if err := run(args, outBuf, errBuf); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	b, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("output not found: %v", err)
	}
	doc := map[string]any{}
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("output parse failed: %v", err)
	}
	if doc["name"] != "モデル" {
		t.Fatalf("exported root mismatch: %v", doc["name"])
	}
	text := string(b)
	for _, want := range []string{"頭剛体", "右髪剛体", "右髪J", `"kind": "sphere"`} {
		if !strings.Contains(text, want) {
			t.Fatalf("output should contain %q", want)
		}
	}

	logText := outBuf.String()
	if !strings.Contains(logText, "記述子読み込み成功") {
		t.Fatalf("log should report descriptor load: %s", logText)
	}
}

func TestRunFailsOnMissingDescriptor(t *testing.T) {
	tempDir := t.TempDir()
	skeletonPath := filepath.Join(tempDir, "skeleton.json")
	writeTestFile(t, skeletonPath, `{"nodes": []}`)

	outBuf := bytes.NewBuffer(nil)
	errBuf := bytes.NewBuffer(nil)
	args := []string{
		"-bone", filepath.Join(tempDir, "nope.csv"),
		"-rigid", filepath.Join(tempDir, "nope.csv"),
		"-joint", filepath.Join(tempDir, "nope.csv"),
		"-skeleton", skeletonPath,
	}
	if err := run(args, outBuf, errBuf); err == nil {
		t.Fatalf("missing descriptor file should fail")
	}
}

// writeTestFile はテスト用ファイルを保存する。
func writeTestFile(t *testing.T, path string, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file failed: %v", err)
	}
}
