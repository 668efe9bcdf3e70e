// 指示: miu200521358
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/miu200521358/mu_rig2scene/pkg/adapter/io_rig/pmde"
	"github.com/miu200521358/mu_rig2scene/pkg/adapter/io_scene"
	"github.com/miu200521358/mu_rig2scene/pkg/usecase/rinteractor"
)

const (
	batchOutputDirMode = 0o755

	boneFileName     = "bones.csv"
	rigidFileName    = "rigids.csv"
	jointFileName    = "joints.csv"
	skeletonFileName = "skeleton.json"
)

// batchConfig は一括取込の実行設定を表す。
type batchConfig struct {
	CasesRoot  string
	OutputRoot string
	Scale      float64
	Layer      string
	DryRun     bool
	FailFast   bool
}

// importEntry は1ケース分の取込入力情報を表す。
type importEntry struct {
	Index      int
	CaseName   string
	CaseDir    string
	OutputPath string
}

// importResult は1ケース分の取込結果を表す。
type importResult struct {
	Entry        importEntry
	Status       string
	Duration     time.Duration
	Err          error
	ProgressInfo string
}

// importProgressCollector は取込処理の進捗イベントを収集する。
type importProgressCollector struct {
	eventCounts map[rinteractor.ImportProgressEventType]int
	warningIDs  map[string]int
}

// main は実機ケース検証向けのリグ記述子一括取込を実行する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括取込を実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	entries, err := buildImportEntries(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "取込対象の解決に失敗しました: %v\n", err)
		return 2
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "取込対象ケースがありません")
		return 2
	}

	results := executeBatchImport(config, entries)
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	defaultRoot, err := resolveDefaultRoot()
	if err != nil {
		return batchConfig{}, err
	}
	casesRoot := flag.String("cases-root", filepath.Join(defaultRoot, "cases"), "取込ケースのルートディレクトリ")
	outputRoot := flag.String("output-root", filepath.Join(defaultRoot, "output"), "取込結果の出力ルートディレクトリ")
	scale := flag.Float64("scale", 1.0, "取込スケール")
	layer := flag.String("layer", "cloth", "物理剛体用レイヤー名")
	dryRun := flag.Bool("dry-run", false, "実取込せず、入力解決と出力先計画のみ表示する")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	flag.Parse()

	trimmedCasesRoot := strings.TrimSpace(*casesRoot)
	if trimmedCasesRoot == "" {
		return batchConfig{}, errors.New("cases-root が空です")
	}
	trimmedOutputRoot := strings.TrimSpace(*outputRoot)
	if trimmedOutputRoot == "" {
		return batchConfig{}, errors.New("output-root が空です")
	}
	return batchConfig{
		CasesRoot:  filepath.Clean(trimmedCasesRoot),
		OutputRoot: filepath.Clean(trimmedOutputRoot),
		Scale:      *scale,
		Layer:      *layer,
		DryRun:     *dryRun,
		FailFast:   *failFast,
	}, nil
}

// resolveDefaultRoot はスクリプト配置ディレクトリ基準の既定ルートを返す。
func resolveDefaultRoot() (string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("実行ファイル位置を取得できません")
	}
	return filepath.Dir(currentFilePath), nil
}

// buildImportEntries はケースルート配下のサブディレクトリから取込対象を生成する。
// 記述子3表と骨格シーンが揃ったディレクトリのみを対象とする。
func buildImportEntries(config batchConfig) ([]importEntry, error) {
	dirEntries, err := os.ReadDir(config.CasesRoot)
	if err != nil {
		return nil, fmt.Errorf("ケースルートの読み取りに失敗しました: %w", err)
	}

	entries := make([]importEntry, 0, len(dirEntries))
	index := 0
	for _, dirEntry := range dirEntries {
		if !dirEntry.IsDir() {
			continue
		}
		caseDir := filepath.Join(config.CasesRoot, dirEntry.Name())
		if !hasRequiredInputs(caseDir) {
			continue
		}
		index++
		entries = append(entries, importEntry{
			Index:      index,
			CaseName:   dirEntry.Name(),
			CaseDir:    caseDir,
			OutputPath: filepath.Join(config.OutputRoot, fmt.Sprintf("%03d_%s", index, dirEntry.Name()), "scene.json"),
		})
	}
	return entries, nil
}

// hasRequiredInputs はケースディレクトリに取込入力が揃っているか判定する。
func hasRequiredInputs(caseDir string) bool {
	for _, name := range []string{boneFileName, rigidFileName, jointFileName, skeletonFileName} {
		if _, err := os.Stat(filepath.Join(caseDir, name)); err != nil {
			return false
		}
	}
	return true
}

// executeBatchImport は全ケースの取込処理を順次実行する。
func executeBatchImport(config batchConfig, entries []importEntry) []importResult {
	results := make([]importResult, 0, len(entries))
	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] 取込開始: case=%s\n", entry.Index, total, entry.CaseName)
		result := importCaseEntry(config, entry)
		results = append(results, result)
		switch result.Status {
		case "succeeded":
			fmt.Printf("[%d/%d] 取込成功: case=%s output=%s elapsed=%s\n", entry.Index, total, entry.CaseName, entry.OutputPath, result.Duration.Round(time.Millisecond))
			if strings.TrimSpace(result.ProgressInfo) != "" {
				fmt.Printf("[%d/%d] 取込進捗: %s\n", entry.Index, total, result.ProgressInfo)
			}
		case "dry_run":
			fmt.Printf("[%d/%d] DRY-RUN: case=%s input=%s output=%s\n", entry.Index, total, entry.CaseName, entry.CaseDir, entry.OutputPath)
		default:
			fmt.Printf("[%d/%d] 取込失敗: case=%s reason=%v\n", entry.Index, total, entry.CaseName, result.Err)
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// importCaseEntry は1ケース分の取込を実行する。
func importCaseEntry(config batchConfig, entry importEntry) importResult {
	result := importResult{
		Entry:  entry,
		Status: "failed",
	}
	if config.DryRun {
		result.Status = "dry_run"
		return result
	}

	boneText, err := os.ReadFile(filepath.Join(entry.CaseDir, boneFileName))
	if err != nil {
		result.Err = fmt.Errorf("ボーン表の読み取りに失敗しました: %w", err)
		return result
	}
	rigidText, err := os.ReadFile(filepath.Join(entry.CaseDir, rigidFileName))
	if err != nil {
		result.Err = fmt.Errorf("剛体表の読み取りに失敗しました: %w", err)
		return result
	}
	jointText, err := os.ReadFile(filepath.Join(entry.CaseDir, jointFileName))
	if err != nil {
		result.Err = fmt.Errorf("ジョイント表の読み取りに失敗しました: %w", err)
		return result
	}

	sceneRepository := io_scene.NewSceneRepository()
	world, root, err := sceneRepository.Load(filepath.Join(entry.CaseDir, skeletonFileName))
	if err != nil {
		result.Err = fmt.Errorf("骨格シーンの読み込みに失敗しました: %w", err)
		return result
	}

	startedAt := time.Now()
	uc := rinteractor.NewRig2SceneUsecase(rinteractor.Rig2SceneUsecaseDeps{
		RigReader: pmde.NewRigRepository(),
		Host:      world,
	})
	session, err := uc.Parse(nil, string(boneText), string(rigidText), string(jointText))
	if err != nil {
		result.Err = fmt.Errorf("記述子の解析に失敗しました: %w", err)
		return result
	}

	progressCollector := newImportProgressCollector()
	report, err := uc.Synthesize(rinteractor.SynthesizeRequest{
		Root:             root,
		RigidBodyRecords: session.RigidBodyRecords(),
		JointRecords:     session.JointRecords(),
		Scale:            config.Scale,
		PhysicsLayer:     config.Layer,
		ProgressReporter: progressCollector,
	})
	if err != nil {
		result.Err = fmt.Errorf("物理取付に失敗しました: %w", err)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(entry.OutputPath), batchOutputDirMode); err != nil {
		result.Err = fmt.Errorf("出力ディレクトリ作成に失敗しました: %w", err)
		return result
	}
	if err := sceneRepository.Save(entry.OutputPath, world, root); err != nil {
		result.Err = fmt.Errorf("シーン書き出しに失敗しました: %w", err)
		return result
	}

	result.Status = "succeeded"
	result.Duration = time.Since(startedAt)
	result.ProgressInfo = fmt.Sprintf(
		"colliders=%d rigidbodies=%d joints=%d skipped=%d %s",
		report.CollidersAttached,
		report.RigidBodiesAttached,
		report.JointsAttached,
		report.SkippedCount(),
		progressCollector.Summary(),
	)
	return result
}

// printBatchSummary は取込結果の集計を標準出力へ表示する。
func printBatchSummary(results []importResult) {
	succeeded := 0
	failed := 0
	dryRun := 0
	for _, result := range results {
		switch result.Status {
		case "succeeded":
			succeeded++
		case "dry_run":
			dryRun++
		default:
			failed++
		}
	}
	fmt.Printf(
		"バッチ取込サマリ: total=%d succeeded=%d failed=%d dry_run=%d\n",
		len(results),
		succeeded,
		failed,
		dryRun,
	)
}

// newImportProgressCollector は取込進捗収集器を生成する。
func newImportProgressCollector() *importProgressCollector {
	return &importProgressCollector{
		eventCounts: map[rinteractor.ImportProgressEventType]int{},
		warningIDs:  map[string]int{},
	}
}

// ReportImportProgress は取込処理の進捗イベントを収集する。
func (collector *importProgressCollector) ReportImportProgress(event rinteractor.ImportProgressEvent) {
	if collector == nil {
		return
	}
	if collector.eventCounts == nil {
		collector.eventCounts = map[rinteractor.ImportProgressEventType]int{}
	}
	collector.eventCounts[event.Type]++
	if event.WarningID != "" {
		if collector.warningIDs == nil {
			collector.warningIDs = map[string]int{}
		}
		collector.warningIDs[event.WarningID]++
	}
}

// Summary は収集した取込進捗の要約文字列を返す。
func (collector *importProgressCollector) Summary() string {
	if collector == nil || len(collector.eventCounts) == 0 {
		return ""
	}
	types := make([]string, 0, len(collector.eventCounts))
	for eventType := range collector.eventCounts {
		types = append(types, string(eventType))
	}
	sort.Strings(types)
	warnings := make([]string, 0, len(collector.warningIDs))
	for warningID := range collector.warningIDs {
		warnings = append(warnings, warningID)
	}
	sort.Strings(warnings)
	summary := fmt.Sprintf("events=%d stages=%s", len(collector.eventCounts), strings.Join(types, ","))
	if len(warnings) > 0 {
		summary += " warnings=" + strings.Join(warnings, ",")
	}
	return summary
}
