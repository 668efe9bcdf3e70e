// 指示: miu200521358
package rinteractor

import (
	"github.com/miu200521358/mu_rig2scene/pkg/domain/rig"
	"github.com/miu200521358/mu_rig2scene/pkg/usecase/port/rhost"
	"github.com/tiendc/go-deepcopy"
)

// ImportProgressEventType は取込処理の進捗イベント種別を表す。
type ImportProgressEventType string

const (
	// ImportProgressEventTypeParseCompleted は記述子3表の解析完了イベントを表す。
	ImportProgressEventTypeParseCompleted ImportProgressEventType = "parse_completed"
	// ImportProgressEventTypeRigidResolved は剛体の対象ボーン解決完了イベントを表す。
	ImportProgressEventTypeRigidResolved ImportProgressEventType = "rigid_resolved"
	// ImportProgressEventTypeRigidAttached は剛体取付完了イベントを表す。
	ImportProgressEventTypeRigidAttached ImportProgressEventType = "rigid_attached"
	// ImportProgressEventTypeRigidSkipped は剛体読み飛ばしイベントを表す。
	ImportProgressEventTypeRigidSkipped ImportProgressEventType = "rigid_skipped"
	// ImportProgressEventTypeJointAttached はジョイント取付完了イベントを表す。
	ImportProgressEventTypeJointAttached ImportProgressEventType = "joint_attached"
	// ImportProgressEventTypeJointSkipped はジョイント読み飛ばしイベントを表す。
	ImportProgressEventTypeJointSkipped ImportProgressEventType = "joint_skipped"
	// ImportProgressEventTypeCompleted は取込完了イベントを表す。
	ImportProgressEventTypeCompleted ImportProgressEventType = "completed"
)

// ImportProgressEvent は取込処理の進捗イベントを表す。
type ImportProgressEvent struct {
	Type      ImportProgressEventType
	Name      string
	BoneName  string
	WarningID string
}

// IImportProgressReporter は取込処理の進捗通知契約を表す。
type IImportProgressReporter interface {
	// ReportImportProgress は取込処理進捗を通知する。
	ReportImportProgress(event ImportProgressEvent)
}

// SynthesizeRequest は物理取付要求を表す。
type SynthesizeRequest struct {
	Root             rhost.INode
	RigidBodyRecords []rig.RigidBodyRecord
	JointRecords     []rig.JointRecord
	Scale            float64
	PhysicsLayer     string
	ProgressReporter IImportProgressReporter
}

// SkipEntry は読み飛ばしたレコードの報告1件を表す。
type SkipEntry struct {
	Name      string
	BoneName  string
	WarningID string
}

// SynthesisReport は物理取付の結果報告を表す。
// 取付済みコンポーネント数と、名前解決に失敗して読み飛ばした
// レコードの一覧を保持する。読み飛ばしはエラーではない。
type SynthesisReport struct {
	RigidBodiesAttached int
	CollidersAttached   int
	JointsAttached      int
	SkippedRigidBodies  []SkipEntry
	SkippedJoints       []SkipEntry
}

// SkippedCount は読み飛ばしたレコード総数を返す。
func (r *SynthesisReport) SkippedCount() int {
	if r == nil {
		return 0
	}
	return len(r.SkippedRigidBodies) + len(r.SkippedJoints)
}

// ImportSession は解析済み記述子を解析フェーズと取付フェーズの間で保持する。
// プロセス全域の可変リストを持たず、呼び出し側が明示的に受け渡す。
type ImportSession struct {
	bones  []rig.BoneRecord
	rigids []rig.RigidBodyRecord
	joints []rig.JointRecord
}

// BoneRecords はボーンレコードの複製を返す。
func (s *ImportSession) BoneRecords() []rig.BoneRecord {
	if s == nil {
		return nil
	}
	var copied []rig.BoneRecord
	_ = deepcopy.Copy(&copied, s.bones)
	return copied
}

// RigidBodyRecords は剛体レコードの複製を返す。
func (s *ImportSession) RigidBodyRecords() []rig.RigidBodyRecord {
	if s == nil {
		return nil
	}
	var copied []rig.RigidBodyRecord
	_ = deepcopy.Copy(&copied, s.rigids)
	return copied
}

// JointRecords はジョイントレコードの複製を返す。
func (s *ImportSession) JointRecords() []rig.JointRecord {
	if s == nil {
		return nil
	}
	var copied []rig.JointRecord
	_ = deepcopy.Copy(&copied, s.joints)
	return copied
}

// reportImportProgress は取込処理の進捗を通知する。
func reportImportProgress(reporter IImportProgressReporter, event ImportProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportImportProgress(event)
}
