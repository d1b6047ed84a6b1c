// 指示: miu200521358
package rigging

import (
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/model"
)

// preBuild は組立の前処理を行う。
// 全剛体と全ジョイントの姿勢退避、親子関係コンストレイントとIKのミュート、
// ボーン未設定剛体の検出と擬似親マップの構築までを担う。
func (m *Model) preBuild() {
	ctx := newBuildContext()
	m.ctx = ctx

	orphans := map[*model.Object]bool{}
	for _, rigid := range m.RigidBodies() {
		backupTransforms(rigid)

		var armature *model.Object
		var boneName string
		if relation, ok := rigid.Constraint(model.ParentRelationConstraintName); ok {
			relation.Mute = true
			armature = relation.Target
			boneName = relation.Subtarget
		}

		rb := rigid.RigidBody
		if rb == nil {
			continue
		}
		if rb.Mode == model.ModeDynamic || rb.Mode == model.ModeDynamicBone {
			if armature != nil && boneName != "" {
				setIKMuted(armature, boneName, true)
			} else {
				orphans[rigid] = true
			}
		}
	}

	// ミュートを反映させるため一度だけ強制再評価する
	m.scene.Evaluate()

	claimed := map[*model.Object]bool{}
	for _, joint := range m.Joints() {
		backupTransforms(joint)

		jc := joint.Joint
		if jc == nil || !jc.Bound {
			continue
		}
		obj1, obj2 := jc.Object1, jc.Object2
		switch {
		case orphans[obj2]:
			// 最初に見つかったジョイントが勝ち、以後の再割り当てはしない
			if !orphans[obj1] && !claimed[obj2] {
				ctx.fakeParentMap[obj1] = append(ctx.fakeParentMap[obj1], obj2)
				claimed[obj2] = true
			}
		case orphans[obj1]:
			if !claimed[obj1] {
				ctx.fakeParentMap[obj2] = append(ctx.fakeParentMap[obj2], obj1)
				claimed[obj1] = true
			}
		}
	}
}
