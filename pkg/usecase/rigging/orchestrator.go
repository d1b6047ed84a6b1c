// 指示: miu200521358
package rigging

import (
	"fmt"
	"time"

	"github.com/miu200521358/mu_mmd_rig/pkg/domain/model"
	"github.com/miu200521358/mu_mmd_rig/pkg/infra/logging"
)

// Build はリグ全体を組み立てる。既に組立済みの場合は先にCleanして
// 再組立するため、何度呼んでも結果は変わらない。
func (m *Model) Build() error {
	prev := m.scene.SetPhysicsWorldEnabled(false)
	defer m.scene.SetPhysicsWorldEnabled(prev)

	if m.IsBuilt() {
		m.Clean()
	}
	m.setBuilt(true)

	logger := logging.DefaultLogger()
	logger.Info("****************************************")
	logger.Info(" Build rig")
	logger.Info("****************************************")
	start := time.Now()

	m.preBuild()
	if err := m.BuildRigids(m.NonCollisionThreshold); err != nil {
		// 部分組立状態のまま返す。呼び出し側はCleanで復元できる。
		return fmt.Errorf("リグ組立に失敗しました: %w", err)
	}
	m.BuildJoints()
	m.postBuild()

	logger.Info(" Finished building in %f seconds.", time.Since(start).Seconds())
	return nil
}

// postBuild は組立の後処理を行う。
// 追従プロキシの遅延親子付けを適用し、追従コンストレイントのミュートを
// 解除してから最終の強制再評価を行う。一時状態はここで破棄される。
func (m *Model) postBuild() {
	ctx := m.ctx
	m.ctx = nil

	m.scene.Evaluate()

	if ctx != nil {
		// プロキシを所有剛体へ一括で親子付けする(依存グラフ更新の節約)
		for empty, owner := range ctx.emptyParentMap {
			world := empty.MatrixWorld()
			empty.Parent = owner
			empty.ParentKind = model.ParentObject
			empty.ParentBoneName = ""
			empty.SetMatrixWorld(world)
		}
	}

	if arm := m.Armature(); arm != nil && arm.Armature != nil {
		for _, bone := range arm.Armature.Bones() {
			if c, ok := bone.Constraint(model.RigidTrackConstraintName); ok {
				c.Mute = false
			}
		}
	}

	m.scene.Evaluate()
}

// Clean はリグを解除してシーンを組立前の状態へ戻す。
// 部分組立状態にも耐えるよう、各復元処理は独立に冪等である。
func (m *Model) Clean() {
	prev := m.scene.SetPhysicsWorldEnabled(false)
	defer m.scene.SetPhysicsWorldEnabled(prev)

	logger := logging.DefaultLogger()
	logger.Info("****************************************")
	logger.Info(" Clean rig")
	logger.Info("****************************************")
	start := time.Now()

	armObj := m.Armature()
	if armObj != nil && armObj.Armature != nil {
		for _, bone := range armObj.Armature.Bones() {
			bone.RemoveConstraint(model.RigidTrackConstraintName)
		}
	}

	recreated := 0
	for _, rigid := range m.RigidBodies() {
		relation, created := rigid.EnsureParentRelation(armObj)
		if created {
			recreated++
			logger.Info("%3d# Create a parent relation constraint for %s", recreated, rigid.Name)
		}
		relation.Mute = true

		if rigid.RigidBody != nil {
			switch rigid.RigidBody.Mode {
			case model.ModeStatic:
				if grp := m.RigidGroupObject(); grp != nil {
					rigid.Parent = grp
					rigid.ParentKind = model.ParentObject
					rigid.ParentBoneName = ""
				}
			case model.ModeDynamic, model.ModeDynamicBone:
				if relation.Target != nil && relation.Subtarget != "" {
					setIKMuted(relation.Target, relation.Subtarget, false)
				}
			}
		}
		restoreTransforms(rigid)
	}

	for _, joint := range m.Joints() {
		restoreTransforms(joint)
	}

	m.removeTemporaryObjects()
	m.ctx = nil

	m.scene.Evaluate()

	logger.Info(" Finished cleaning in %f seconds.", time.Since(start).Seconds())
	m.setBuilt(false)
}

// removeTemporaryObjects は組立中に生成した一時オブジェクトを全て削除する。
func (m *Model) removeTemporaryObjects() {
	tmp := m.TemporaryObjects()
	if len(tmp) == 0 {
		return
	}
	m.scene.Delete(tmp...)
}
