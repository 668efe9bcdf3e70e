// 指示: miu200521358
package rinteractor

import (
	"github.com/miu200521358/mu_rig2scene/pkg/usecase/port/rhost"
	"github.com/miu200521358/mu_rig2scene/pkg/usecase/port/rinput"
)

// Rig2SceneUsecaseDeps はリグ取込ユースケースの依存を表す。
type Rig2SceneUsecaseDeps struct {
	RigReader rinput.IRigReader
	Host      rhost.IPhysicsHost
}

// Rig2SceneUsecase は記述子解析とシーンへの物理取付をまとめたユースケースを表す。
type Rig2SceneUsecase struct {
	rigReader rinput.IRigReader
	host      rhost.IPhysicsHost
}

// NewRig2SceneUsecase はリグ取込ユースケースを生成する。
func NewRig2SceneUsecase(deps Rig2SceneUsecaseDeps) *Rig2SceneUsecase {
	return &Rig2SceneUsecase{
		rigReader: deps.RigReader,
		host:      deps.Host,
	}
}
