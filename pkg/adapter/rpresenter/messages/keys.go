// 指示: miu200521358
// Package messages はCLI表示に使うメッセージキーを提供する。
package messages

// メッセージキー一覧。
const (
	UsageBonePath     = "ボーン表CSVパス"
	UsageRigidPath    = "剛体表CSVパス"
	UsageJointPath    = "ジョイント表CSVパス"
	UsageSkeletonPath = "骨格シーンJSONパス"
	UsageOutPath      = "取込後シーンJSON出力パス(省略時は書き出さない)"
	UsageScale        = "取込スケール"
	UsageLayer        = "物理剛体用レイヤー名"
	UsageVerbose      = "進捗ログを出力する"

	MessageBoneRequired     = "ボーン表CSVを指定してください (-bone)"
	MessageRigidRequired    = "剛体表CSVを指定してください (-rigid)"
	MessageJointRequired    = "ジョイント表CSVを指定してください (-joint)"
	MessageSkeletonRequired = "骨格シーンJSONを指定してください (-skeleton)"

	MessageDescriptorReadFailed = "記述子ファイルの読み取りに失敗しました"
	MessageSkeletonLoadFailed   = "骨格シーンの読み込みに失敗しました"
	MessageSynthesisFailed      = "物理取付に失敗しました"

	LogParseSuccess     = "記述子読み込み成功"
	LogSynthesisSuccess = "物理取付完了"
	LogSceneSaved       = "取込後シーンを書き出しました"
	LogRigidBodySkipped = "剛体を読み飛ばしました"
	LogJointSkipped     = "ジョイントを読み飛ばしました"
	LogImportProgress   = "取込進捗"
)
