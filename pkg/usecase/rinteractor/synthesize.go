// 指示: miu200521358
package rinteractor

import (
	"fmt"
	"math"

	"github.com/miu200521358/mu_rig2scene/pkg/domain/rig"
	"github.com/miu200521358/mu_rig2scene/pkg/usecase/port/rhost"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// motionLockEpsilon は可動範囲を固定とみなす幅の閾値。
	motionLockEpsilon = 1e-6
	// rootYawCompensationDeg は元リグと取込先の座標系差を吸収するヨー角。
	rootYawCompensationDeg = 180.0
	// poseReferenceNodeName は姿勢計算用一時ノードの名前。
	poseReferenceNodeName = "__rig_pose_reference"
)

// Synthesize は解決済みレコードからコライダ・剛体・ジョイントをシーンへ取り付ける。
// 名前解決に失敗したレコードは読み飛ばして報告へ記録し、処理は継続する。
// 取付は単一パスで、途中失敗時の巻き戻しは行わない。
func (uc *Rig2SceneUsecase) Synthesize(request SynthesizeRequest) (*SynthesisReport, error) {
	if uc == nil || uc.host == nil {
		return nil, fmt.Errorf("ホストエンジンポートが設定されていません")
	}
	if request.Root == nil {
		return nil, fmt.Errorf("骨格ルートノードが未指定です")
	}

	report := &SynthesisReport{}
	rootPosition := request.Root.WorldPosition()

	for _, record := range request.RigidBodyRecords {
		bone := FindNodeByName(request.Root, record.BoneName)
		if bone == nil {
			uc.skipRigidBody(report, request.ProgressReporter, record, rig.RigWarningBoneUnresolved)
			continue
		}
		reportImportProgress(request.ProgressReporter, ImportProgressEvent{
			Type:     ImportProgressEventTypeRigidResolved,
			Name:     record.Name,
			BoneName: record.BoneName,
		})
		if !record.Shape.Valid() {
			uc.skipRigidBody(report, request.ProgressReporter, record, rig.RigWarningShapeUnknown)
			continue
		}
		uc.attachRigidBody(record, bone, rootPosition, request.Scale, request.PhysicsLayer, report)
		reportImportProgress(request.ProgressReporter, ImportProgressEvent{
			Type:     ImportProgressEventTypeRigidAttached,
			Name:     record.Name,
			BoneName: record.BoneName,
		})
	}

	for _, record := range request.JointRecords {
		uc.attachJoint(record, request.Root, request.ProgressReporter, report)
	}

	reportImportProgress(request.ProgressReporter, ImportProgressEvent{Type: ImportProgressEventTypeCompleted})
	return report, nil
}

// attachRigidBody は剛体レコード1件のコライダと剛体をボーンへ取り付ける。
func (uc *Rig2SceneUsecase) attachRigidBody(record rig.RigidBodyRecord, bone rhost.INode, rootPosition r3.Vec, scale float64, layer string, report *SynthesisReport) {
	collision := uc.host.NewNode(collisionNodeName(record))
	reference := uc.stageCollisionPose(collision, record, rootPosition, scale)
	uc.host.SetParent(collision, bone, true)
	uc.host.Destroy(reference)

	switch record.Shape {
	case rig.ShapeSphere:
		uc.host.AddSphereCollider(collision, record.Size.X*scale)
	case rig.ShapeBox:
		// 元リグのサイズは半寸法なので full extents へ倍化する。
		uc.host.AddBoxCollider(collision, r3.Scale(2*scale, record.Size))
	case rig.ShapeCapsule:
		// 元リグの高さは円筒部のみ。取込先の全高は半球キャップを含むため半径2つ分を足す。
		radius := record.Size.X * scale
		height := (record.Size.Y + record.Size.X*2) * scale
		uc.host.AddCapsuleCollider(collision, radius, height)
	}
	report.CollidersAttached++

	if record.Kind == rig.KindBoneFollower {
		// ボーン追従剛体はシミュレーション対象ではなく、同骨格内の
		// コライダ同士を正しく振る舞わせるための運動学的な台座。
		if !uc.host.HasRigidBody(bone) {
			uc.host.AddRigidBody(bone, rhost.RigidBodySpec{Kinematic: true, UseGravity: false})
			report.RigidBodiesAttached++
		}
		return
	}

	uc.host.SetLayer(collision, layer)
	if !uc.host.HasRigidBody(bone) {
		uc.host.AddRigidBody(bone, rhost.RigidBodySpec{
			Kinematic:           false,
			UseGravity:          true,
			ContinuousDetection: true,
			Mass:                record.Mass,
			LinearDamping:       record.LinearDamping,
			AngularDamping:      record.AngularDamping,
		})
		report.RigidBodiesAttached++
	}
	// 既存剛体があるボーンはそのまま再利用し、パラメータも更新しない
	// (先勝ち)。再実行で剛体が重複しない代わりに、コライダは重複する。
}

// stageCollisionPose は一時参照ノード経由で衝突子ノードの姿勢を決める。
// 元リグの剛体姿勢はモデル空間の絶対値で、ボーン自身の変換からのオフセット
// では表現できない。そこで (1) 原点に置いた参照ノードの子として姿勢を設定し、
// (2) 参照ノードを骨格ルートのワールド位置へ180度ヨー付きで移動して
// 座標系差を補正する。呼び出し側が keep-world でボーンへ付け替えたあと、
// 参照ノードを破棄すること。
func (uc *Rig2SceneUsecase) stageCollisionPose(collision rhost.INode, record rig.RigidBodyRecord, rootPosition r3.Vec, scale float64) rhost.INode {
	reference := uc.host.NewNode(poseReferenceNodeName)
	uc.host.SetParent(collision, reference, false)
	collision.SetLocalPosition(r3.Scale(scale, record.Position))
	collision.SetLocalRotationDeg(record.RotationDeg)
	reference.SetWorldPosition(rootPosition)
	reference.SetWorldRotationDeg(r3.Vec{Y: rootYawCompensationDeg})
	return reference
}

// attachJoint はジョイントレコード1件を子ボーンのノードへ取り付ける。
// 両ボーンが解決でき、かつ双方に剛体が取付済みの場合のみ有効。
func (uc *Rig2SceneUsecase) attachJoint(record rig.JointRecord, root rhost.INode, reporter IImportProgressReporter, report *SynthesisReport) {
	child := FindNodeByName(root, record.ChildBoneName)
	if child == nil {
		uc.skipJoint(report, reporter, record, record.ChildBoneName, rig.RigWarningJointChildUnresolved)
		return
	}
	parent := FindNodeByName(root, record.ParentBoneName)
	if parent == nil {
		uc.skipJoint(report, reporter, record, record.ParentBoneName, rig.RigWarningJointParentUnresolved)
		return
	}
	if !uc.host.HasRigidBody(child) || !uc.host.HasRigidBody(parent) {
		uc.skipJoint(report, reporter, record, record.ChildBoneName, rig.RigWarningJointBodyMissing)
		return
	}

	uc.host.AddJoint(child, rhost.JointSpec{
		Name:          record.Name,
		ConnectedNode: parent,
		// ジョイントは構造材であり、荷重で分離してはならない。
		BreakForce:  math.Inf(1),
		BreakTorque: math.Inf(1),

		LinearMotion:  motionAxes(record.LinearLimitMin, record.LinearLimitMax),
		AngularMotion: motionAxes(record.AngularLimitMin, record.AngularLimitMax),

		// X軸のみ低/高の両端を使い、Y/Z軸はmax由来の対称制限のみを使う。
		// 元実装互換の非対称であり、min側へ揃えないこと。
		AngularLimitLowDegX:  record.AngularLimitMin.X,
		AngularLimitHighDegX: record.AngularLimitMax.X,
		AngularLimitDegY:     record.AngularLimitMax.Y,
		AngularLimitDegZ:     record.AngularLimitMax.Z,

		// 移動制限とばね定数は解析のみで、可動判定以外には未消費。
		LinearLimitMin: record.LinearLimitMin,
		LinearLimitMax: record.LinearLimitMax,
		LinearSpring:   record.LinearSpring,
		AngularSpring:  record.AngularSpring,
	})
	report.JointsAttached++
	reportImportProgress(reporter, ImportProgressEvent{
		Type:     ImportProgressEventTypeJointAttached,
		Name:     record.Name,
		BoneName: record.ChildBoneName,
	})
}

// skipRigidBody は剛体レコードの読み飛ばしを報告へ記録する。
func (uc *Rig2SceneUsecase) skipRigidBody(report *SynthesisReport, reporter IImportProgressReporter, record rig.RigidBodyRecord, warningID string) {
	report.SkippedRigidBodies = append(report.SkippedRigidBodies, SkipEntry{
		Name:      record.Name,
		BoneName:  record.BoneName,
		WarningID: warningID,
	})
	reportImportProgress(reporter, ImportProgressEvent{
		Type:      ImportProgressEventTypeRigidSkipped,
		Name:      record.Name,
		BoneName:  record.BoneName,
		WarningID: warningID,
	})
}

// skipJoint はジョイントレコードの読み飛ばしを報告へ記録する。
func (uc *Rig2SceneUsecase) skipJoint(report *SynthesisReport, reporter IImportProgressReporter, record rig.JointRecord, boneName string, warningID string) {
	report.SkippedJoints = append(report.SkippedJoints, SkipEntry{
		Name:      record.Name,
		BoneName:  boneName,
		WarningID: warningID,
	})
	reportImportProgress(reporter, ImportProgressEvent{
		Type:      ImportProgressEventTypeJointSkipped,
		Name:      record.Name,
		BoneName:  boneName,
		WarningID: warningID,
	})
}

// collisionNodeName は衝突子ノードの名前を決める。
func collisionNodeName(record rig.RigidBodyRecord) string {
	if record.Name != "" {
		return record.Name
	}
	return record.BoneName + "_collision"
}

// motionAxes は軸ごとの可動範囲から可動種別を決める。
func motionAxes(min r3.Vec, max r3.Vec) [3]rhost.Motion {
	return [3]rhost.Motion{
		motionForRange(min.X, max.X),
		motionForRange(min.Y, max.Y),
		motionForRange(min.Z, max.Z),
	}
}

// motionForRange は幅0の範囲を固定、それ以外を範囲内可動とする。
func motionForRange(min float64, max float64) rhost.Motion {
	if math.Abs(min-max) <= motionLockEpsilon {
		return rhost.MotionLocked
	}
	return rhost.MotionLimited
}
