// 指示: miu200521358
package rigging

import (
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/mmath"
	"github.com/miu200521358/mu_mmd_rig/pkg/domain/model"
)

// buildContext は1回の組立セッションに閉じた一時状態を保持する。
// プロセス全域の可変状態にはせず、postBuildで必ず破棄される。
type buildContext struct {
	// fakeParentMap はアンカー剛体 → ボーン未設定の従属剛体群。
	fakeParentMap map[*model.Object][]*model.Object
	// rigidBodyMatrixMap は剛体 → ボーン静止姿勢相対の変換行列。
	rigidBodyMatrixMap map[*model.Object]mmath.Mat4
	// emptyParentMap は追従プロキシ → 現在の所有剛体。
	// 実際のシーン親子付けはpostBuildまで遅延する。
	emptyParentMap map[*model.Object]*model.Object
}

func newBuildContext() *buildContext {
	return &buildContext{
		fakeParentMap:      map[*model.Object][]*model.Object{},
		rigidBodyMatrixMap: map[*model.Object]mmath.Mat4{},
		emptyParentMap:     map[*model.Object]*model.Object{},
	}
}

// ensureContext は組立セッション外からの単発呼び出しに備えて
// コンテキストを遅延生成する。
func (m *Model) ensureContext() *buildContext {
	if m.ctx == nil {
		m.ctx = newBuildContext()
	}
	return m.ctx
}

// pairKey は剛体ペアの無順序キー。安定IDの組で表す。
type pairKey [2]int

func newPairKey(a, b *model.Object) pairKey {
	ia, ib := 0, 0
	if a != nil {
		ia = a.ID
	}
	if b != nil {
		ib = b.ID
	}
	if ia > ib {
		ia, ib = ib, ia
	}
	return pairKey{ia, ib}
}

// rigidPair は非衝突プロキシ生成対象の剛体ペア。
type rigidPair struct {
	a *model.Object
	b *model.Object
}
