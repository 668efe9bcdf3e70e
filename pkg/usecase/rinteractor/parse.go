// 指示: miu200521358
package rinteractor

import (
	"fmt"

	"github.com/miu200521358/mu_rig2scene/pkg/usecase/port/rinput"
)

// Parse は記述子3表を解析し、取付フェーズ用のセッションを生成する。
// いずれかの表の解析に失敗した場合は全体を失敗とし、部分的なレコード
// 一覧は返さない。
func (uc *Rig2SceneUsecase) Parse(rep rinput.IRigReader, boneText string, rigidText string, jointText string) (*ImportSession, error) {
	reader := rep
	if reader == nil {
		reader = uc.rigReader
	}
	if reader == nil {
		return nil, fmt.Errorf("記述子読み込みリポジトリが設定されていません")
	}

	bones, err := reader.ParseBones(boneText)
	if err != nil {
		return nil, fmt.Errorf("記述子の読み込みに失敗しました: %w", err)
	}
	rigids, err := reader.ParseRigidBodies(rigidText, bones)
	if err != nil {
		return nil, fmt.Errorf("記述子の読み込みに失敗しました: %w", err)
	}
	joints, err := reader.ParseJoints(jointText)
	if err != nil {
		return nil, fmt.Errorf("記述子の読み込みに失敗しました: %w", err)
	}

	return &ImportSession{bones: bones, rigids: rigids, joints: joints}, nil
}
