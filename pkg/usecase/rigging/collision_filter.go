// 指示: miu200521358
package rigging

import (
	"fmt"

	"github.com/miu200521358/mu_mmd_rig/pkg/domain/model"
	"github.com/miu200521358/mu_mmd_rig/pkg/infra/logging"
)

// BuildRigids は衝突フィルタ計算と全剛体のアタッチを実行する。
// nonCollisionDistanceScale は近接非衝突判定の距離係数。
//
// 無順序ペアは高々1回だけ評価され、同一ペアに対しては明示ジョイントが
// 近接プロキシより常に優先される。
func (m *Model) BuildRigids(nonCollisionDistanceScale float64) error {
	logger := logging.DefaultLogger()
	logger.Debug("--------------------------------")
	logger.Debug(" Build riggings of rigid bodies")
	logger.Debug("--------------------------------")

	rigidObjects := m.RigidBodies()

	var groups [model.CollisionGroupCount][]*model.Object
	for _, rigid := range rigidObjects {
		rb := rigid.RigidBody
		if rb == nil {
			continue
		}
		if rb.CollisionGroup < 0 || rb.CollisionGroup >= model.CollisionGroupCount {
			logger.Warn("衝突グループ番号が範囲外です: %s (%d)", rigid.Name, rb.CollisionGroup)
			continue
		}
		groups[rb.CollisionGroup] = append(groups[rb.CollisionGroup], rigid)
	}

	// ジョイントを端点ペアの無順序キーで索引し、抑止フラグをリセットする
	jointMap := map[pairKey]*model.Object{}
	for _, joint := range m.Joints() {
		jc := joint.Joint
		if jc == nil || !jc.Bound {
			continue
		}
		jc.DisableCollisions = false
		jointMap[newPairKey(jc.Object1, jc.Object2)] = joint
	}

	logger.Info("Creating non collision constraints")

	var nonCollisionJointTable []rigidPair
	nonCollisionPairs := map[pairKey]struct{}{}
	for _, objA := range rigidObjects {
		if objA.RigidBody == nil {
			continue
		}
		for n, ignore := range objA.RigidBody.CollisionGroupMask {
			if !ignore {
				continue
			}
			for _, objB := range groups[n] {
				if objA == objB {
					continue
				}
				pair := newPairKey(objA, objB)
				if _, done := nonCollisionPairs[pair]; done {
					continue
				}
				if joint, ok := jointMap[pair]; ok {
					joint.Joint.DisableCollisions = true
				} else {
					// 形状に依らず対角長を包含球の代用として使う
					distance := objA.Translation.Distance(objB.Translation)
					threshold := nonCollisionDistanceScale * (model.RigidBodyRange(objA) + model.RigidBodyRange(objB)) * 0.5
					if distance < threshold {
						nonCollisionJointTable = append(nonCollisionJointTable, rigidPair{a: objA, b: objB})
					}
				}
				nonCollisionPairs[pair] = struct{}{}
			}
		}
	}

	for cnt, rigid := range rigidObjects {
		logger.Info("%3d/%3d: Updating rigid body %s", cnt+1, len(rigidObjects), rigid.Name)
		if err := m.UpdateRigid(rigid); err != nil {
			return fmt.Errorf("剛体の更新に失敗しました: %s: %w", rigid.Name, err)
		}
	}

	m.createNonCollisionConstraints(nonCollisionJointTable)
	return nil
}

// createNonCollisionConstraints は記録済みペアごとに非衝突プロキシを実体化する。
func (m *Model) createNonCollisionConstraints(table []rigidPair) {
	if len(table) < 1 {
		return
	}
	logger := logging.DefaultLogger()
	logger.Debug(" creating ncc, counts: %d", len(table))

	ncc := m.scene.NewEmpty("ncc", model.TypeNonCollisionConstraint)
	ncc.Joint = &model.JointSettings{DisableCollisions: true, Bound: true}

	nccObjs := m.scene.Duplicate(ncc, len(table))
	logger.Debug(" created %d ncc.", len(nccObjs))

	for i, pair := range table {
		if i >= len(nccObjs) {
			break
		}
		obj := nccObjs[i]
		obj.Joint.Object1 = pair.a
		obj.Joint.Object2 = pair.b
		obj.Hide = true
		obj.HideSelect = true
		obj.Parent = m.TemporaryGroupObject()
	}
}
