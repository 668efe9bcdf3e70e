// 指示: miu200521358
// Package pmde はPMDEditor形式CSV記述子(ボーン/剛体/ジョイント)の読込アダプタを提供する。
package pmde

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/miu200521358/mu_rig2scene/pkg/domain/rig"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	commentMarker = ';'

	boneFieldCount  = 2
	rigidFieldCount = 20
	jointFieldCount = 30
)

// 剛体表の列位置。
const (
	rigidFieldBodyName       = 1
	rigidFieldBoneName       = 2
	rigidFieldKind           = 5
	rigidFieldShape          = 7
	rigidFieldSize           = 8
	rigidFieldPosition       = 11
	rigidFieldRotation       = 14
	rigidFieldMass           = 17
	rigidFieldLinearDamping  = 18
	rigidFieldAngularDamping = 19
)

// ジョイント表の列位置。
const (
	jointFieldName            = 1
	jointFieldChildBone       = 2
	jointFieldParentBone      = 3
	jointFieldPosition        = 4
	jointFieldRotation        = 7
	jointFieldLinearLimitMin  = 12
	jointFieldLinearLimitMax  = 15
	jointFieldAngularLimitMin = 18
	jointFieldAngularLimitMax = 21
	jointFieldLinearSpring    = 24
	jointFieldAngularSpring   = 27
)

// 表名ラベル(エラーメッセージ用)。
const (
	tableBone  = "ボーン表"
	tableRigid = "剛体表"
	tableJoint = "ジョイント表"
)

// ParseProgressEventType は記述子読込進捗イベント種別を表す。
type ParseProgressEventType string

const (
	// ParseProgressEventTypeBonesParsed はボーン表読込完了イベントを表す。
	ParseProgressEventTypeBonesParsed ParseProgressEventType = "bones_parsed"
	// ParseProgressEventTypeRigidBodiesParsed は剛体表読込完了イベントを表す。
	ParseProgressEventTypeRigidBodiesParsed ParseProgressEventType = "rigid_bodies_parsed"
	// ParseProgressEventTypeJointsParsed はジョイント表読込完了イベントを表す。
	ParseProgressEventTypeJointsParsed ParseProgressEventType = "joints_parsed"
)

// ParseProgressEvent は記述子読込進捗イベントを表す。
type ParseProgressEvent struct {
	Type        ParseProgressEventType
	RecordCount int
}

// RigRepository は記述子CSV3表の読み込み契約を表す。
type RigRepository struct {
	parseProgressReporter func(ParseProgressEvent)
}

// NewRigRepository はRigRepositoryを生成する。
func NewRigRepository() *RigRepository {
	return &RigRepository{}
}

// SetParseProgressReporter は記述子読込進捗受信コールバックを設定する。
func (r *RigRepository) SetParseProgressReporter(reporter func(ParseProgressEvent)) {
	if r == nil {
		return
	}
	r.parseProgressReporter = reporter
}

// ParseBones はボーン表を読み込む。
// indexは有効行の読込順に0始まりで振られる。
func (r *RigRepository) ParseBones(text string) ([]rig.BoneRecord, error) {
	lines, err := descriptorLines(tableBone, text)
	if err != nil {
		return nil, err
	}

	records := make([]rig.BoneRecord, 0, len(lines))
	for _, line := range lines {
		fields := splitFields(line)
		if len(fields) < boneFieldCount {
			return nil, fmt.Errorf("%sの列数が不足しています: %d列 (最低%d列)", tableBone, len(fields), boneFieldCount)
		}
		records = append(records, rig.BoneRecord{
			Index:       len(records),
			NameNative:  fields[0],
			NameDisplay: fields[1],
		})
	}
	r.reportParseProgress(ParseProgressEvent{Type: ParseProgressEventTypeBonesParsed, RecordCount: len(records)})
	return records, nil
}

// ParseRigidBodies は剛体表を読み込み、ボーン表とのindex対応を解決する。
// 対応ボーンが見つからない剛体は BoneIndexUnset のまま保持する。
func (r *RigRepository) ParseRigidBodies(text string, bones []rig.BoneRecord) ([]rig.RigidBodyRecord, error) {
	lines, err := descriptorLines(tableRigid, text)
	if err != nil {
		return nil, err
	}

	boneIndexes := make(map[string]int, len(bones))
	for _, bone := range bones {
		if _, exists := boneIndexes[bone.NameNative]; !exists {
			boneIndexes[bone.NameNative] = bone.Index
		}
	}

	records := make([]rig.RigidBodyRecord, 0, len(lines))
	for _, line := range lines {
		fields := splitFields(line)
		if len(fields) < rigidFieldCount {
			return nil, fmt.Errorf("%sの列数が不足しています: %d列 (最低%d列)", tableRigid, len(fields), rigidFieldCount)
		}

		kind, err := parseTableInt(tableRigid, "剛体種別", fields[rigidFieldKind])
		if err != nil {
			return nil, err
		}
		shape, err := parseTableInt(tableRigid, "形状", fields[rigidFieldShape])
		if err != nil {
			return nil, err
		}
		size, err := parseTableVec3(tableRigid, "サイズ", fields, rigidFieldSize)
		if err != nil {
			return nil, err
		}
		position, err := parseTableVec3(tableRigid, "位置", fields, rigidFieldPosition)
		if err != nil {
			return nil, err
		}
		rotation, err := parseTableVec3(tableRigid, "回転", fields, rigidFieldRotation)
		if err != nil {
			return nil, err
		}
		mass, err := parseTableFloat(tableRigid, "質量", fields[rigidFieldMass])
		if err != nil {
			return nil, err
		}
		linearDamping, err := parseTableFloat(tableRigid, "移動減衰", fields[rigidFieldLinearDamping])
		if err != nil {
			return nil, err
		}
		angularDamping, err := parseTableFloat(tableRigid, "回転減衰", fields[rigidFieldAngularDamping])
		if err != nil {
			return nil, err
		}

		record := rig.RigidBodyRecord{
			Name:           fields[rigidFieldBodyName],
			BoneName:       fields[rigidFieldBoneName],
			BoneIndex:      rig.BoneIndexUnset,
			Kind:           rig.Kind(kind),
			Shape:          rig.Shape(shape),
			Size:           size,
			Position:       position,
			RotationDeg:    rotation,
			Mass:           mass,
			LinearDamping:  linearDamping,
			AngularDamping: angularDamping,
		}
		if index, exists := boneIndexes[record.BoneName]; exists {
			record.BoneIndex = index
		}
		records = append(records, record)
	}
	r.reportParseProgress(ParseProgressEvent{Type: ParseProgressEventTypeRigidBodiesParsed, RecordCount: len(records)})
	return records, nil
}

// ParseJoints はジョイント表を読み込む。
func (r *RigRepository) ParseJoints(text string) ([]rig.JointRecord, error) {
	lines, err := descriptorLines(tableJoint, text)
	if err != nil {
		return nil, err
	}

	records := make([]rig.JointRecord, 0, len(lines))
	for _, line := range lines {
		fields := splitFields(line)
		if len(fields) < jointFieldCount {
			return nil, fmt.Errorf("%sの列数が不足しています: %d列 (最低%d列)", tableJoint, len(fields), jointFieldCount)
		}

		record := rig.JointRecord{
			Name:           fields[jointFieldName],
			ChildBoneName:  fields[jointFieldChildBone],
			ParentBoneName: fields[jointFieldParentBone],
		}

		vecFields := []struct {
			label string
			start int
			dest  *r3.Vec
		}{
			{"位置", jointFieldPosition, &record.Position},
			{"回転", jointFieldRotation, &record.RotationDeg},
			{"移動制限min", jointFieldLinearLimitMin, &record.LinearLimitMin},
			{"移動制限max", jointFieldLinearLimitMax, &record.LinearLimitMax},
			{"回転制限min", jointFieldAngularLimitMin, &record.AngularLimitMin},
			{"回転制限max", jointFieldAngularLimitMax, &record.AngularLimitMax},
			{"ばね移動", jointFieldLinearSpring, &record.LinearSpring},
			{"ばね回転", jointFieldAngularSpring, &record.AngularSpring},
		}
		for _, vf := range vecFields {
			parsed, err := parseTableVec3(tableJoint, vf.label, fields, vf.start)
			if err != nil {
				return nil, err
			}
			*vf.dest = parsed
		}
		records = append(records, record)
	}
	r.reportParseProgress(ParseProgressEvent{Type: ParseProgressEventTypeJointsParsed, RecordCount: len(records)})
	return records, nil
}

// reportParseProgress は記述子読込進捗を通知する。
func (r *RigRepository) reportParseProgress(event ParseProgressEvent) {
	if r == nil || r.parseProgressReporter == nil {
		return
	}
	r.parseProgressReporter(event)
}

// descriptorLines は記述子テキストを有効行へ分解する。
// 空白除去後に空の行、および先頭が ; の行は読み飛ばす。
func descriptorLines(table string, text string) ([]string, error) {
	decoded, err := decodeDescriptorText(table, text)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, raw := range strings.Split(decoded, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || line[0] == commentMarker {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// decodeDescriptorText は記述子テキストをUTF-8へ正規化する。
// PMDEditorの既定出力はShift_JISのため、UTF-8として不正な場合はShift_JISとして復号する。
func decodeDescriptorText(table string, text string) (string, error) {
	if utf8.ValidString(text) {
		return text, nil
	}
	decoded, _, err := transform.String(japanese.ShiftJIS.NewDecoder(), text)
	if err != nil {
		return "", fmt.Errorf("%sの文字コード変換に失敗しました: %w", table, err)
	}
	return decoded, nil
}

// splitFields は有効行をカンマで分割し、前後空白と囲み引用符を除去する。
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i, field := range fields {
		fields[i] = strings.Trim(strings.TrimSpace(field), `"`)
	}
	return fields
}

// parseTableFloat は数値フィールドを解釈する。失敗は表全体の読込失敗とする。
func parseTableFloat(table string, label string, value string) (float64, error) {
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%sの%sを数値として解釈できません: %q: %w", table, label, value, err)
	}
	return parsed, nil
}

// parseTableInt は整数フィールドを解釈する。小数表記は切り捨てる。
func parseTableInt(table string, label string, value string) (int, error) {
	parsed, err := parseTableFloat(table, label, value)
	if err != nil {
		return 0, err
	}
	return int(parsed), nil
}

// parseTableVec3 は連続3列を3次元ベクトルとして解釈する。
func parseTableVec3(table string, label string, fields []string, start int) (r3.Vec, error) {
	x, err := parseTableFloat(table, label+"X", fields[start])
	if err != nil {
		return r3.Vec{}, err
	}
	y, err := parseTableFloat(table, label+"Y", fields[start+1])
	if err != nil {
		return r3.Vec{}, err
	}
	z, err := parseTableFloat(table, label+"Z", fields[start+2])
	if err != nil {
		return r3.Vec{}, err
	}
	return r3.Vec{X: x, Y: y, Z: z}, nil
}
