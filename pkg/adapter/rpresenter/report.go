// 指示: miu200521358
// Package rpresenter は取込結果と進捗の表示整形を提供する。
package rpresenter

import (
	"github.com/miu200521358/mu_rig2scene/pkg/adapter/rpresenter/messages"
	"github.com/miu200521358/mu_rig2scene/pkg/usecase/rinteractor"
	"github.com/rs/zerolog"
)

// LogReport は取込結果を構造化ログへ書き出す。
// 読み飛ばしは警告として1件ずつ出力する。
func LogReport(logger zerolog.Logger, report *rinteractor.SynthesisReport) {
	if report == nil {
		return
	}
	logger.Info().
		Int("colliders", report.CollidersAttached).
		Int("rigid_bodies", report.RigidBodiesAttached).
		Int("joints", report.JointsAttached).
		Int("skipped", report.SkippedCount()).
		Msg(messages.LogSynthesisSuccess)

	for _, entry := range report.SkippedRigidBodies {
		logger.Warn().
			Str("name", entry.Name).
			Str("bone", entry.BoneName).
			Str("warning_id", entry.WarningID).
			Msg(messages.LogRigidBodySkipped)
	}
	for _, entry := range report.SkippedJoints {
		logger.Warn().
			Str("name", entry.Name).
			Str("bone", entry.BoneName).
			Str("warning_id", entry.WarningID).
			Msg(messages.LogJointSkipped)
	}
}

// ProgressLogger は取込進捗イベントを構造化ログへ流す。
type ProgressLogger struct {
	logger zerolog.Logger
}

// NewProgressLogger はProgressLoggerを生成する。
func NewProgressLogger(logger zerolog.Logger) *ProgressLogger {
	return &ProgressLogger{logger: logger}
}

// ReportImportProgress は取込処理進捗を通知する。
func (p *ProgressLogger) ReportImportProgress(event rinteractor.ImportProgressEvent) {
	if p == nil {
		return
	}
	entry := p.logger.Debug().Str("type", string(event.Type))
	if event.Name != "" {
		entry = entry.Str("name", event.Name)
	}
	if event.BoneName != "" {
		entry = entry.Str("bone", event.BoneName)
	}
	if event.WarningID != "" {
		entry = entry.Str("warning_id", event.WarningID)
	}
	entry.Msg(messages.LogImportProgress)
}
