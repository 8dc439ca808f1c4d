package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func test_zones(t *testing.T, n_zone int, n_layer int, n_pallet int) *Zones {
	t.Helper()

	cmd, err := get_commodity("apple", "")
	require.NoError(t, err)
	pkg, err := get_packaging("corrugated_box", "")
	require.NoError(t, err)

	zones, err := NewZones(test_geometry(n_zone, n_layer, n_pallet), cmd, pkg)
	require.NoError(t, err)

	return zones
}

func TestNewZonesGeometry(t *testing.T) {
	zones := test_zones(t, 4, 2, 2)
	gmt := test_geometry(4, 2, 2)

	assert.Equal(t, 16, zones.n_total())

	// 有効流路断面積は総断面積の (1 - 積載率) 倍
	a_gross := gmt.ZoneDimY * gmt.ZoneDimZ
	assert.InDelta(t, a_gross*(1.0-gmt.PhiPack), zones.a_flow, 1.0e-9)

	// ゾーン内空気体積はゾーン体積の (1 - 積載率) 倍
	assert.InDelta(t, zones.volume*(1.0-gmt.PhiPack), zones.v_air, 1.0e-9)

	// 産品質量はかさ密度と積載体積の積
	cmd, _ := get_commodity("apple", "")
	assert.InDelta(t, cmd.RhoBulk*gmt.PhiPack*zones.volume, zones.m_p, 1.0e-9)

	// 給気口からの距離はゾーン中心で評価する
	assert.InDelta(t, 1.5, zones.dist_is[0], 1.0e-12)
	assert.InDelta(t, 10.5, zones.dist_is[3], 1.0e-12)
}

func TestNewZonesPositionFactor(t *testing.T) {
	// 下層ほど給気が届きやすく位置係数は大きい
	zones := test_zones(t, 2, 3, 1)
	assert.InDelta(t, 1.1, zones.f_pos_js[0], 1.0e-9)
	assert.InDelta(t, 0.9, zones.f_pos_js[2], 1.0e-9)
	assert.Greater(t, zones.f_pos_js[0], zones.f_pos_js[1])

	// 単層の場合は 1.0
	single := test_zones(t, 2, 1, 1)
	assert.InDelta(t, 1.0, single.f_pos_js[0], 1.0e-12)
}

func TestZonesOffsetRoundtrip(t *testing.T) {
	zones := test_zones(t, 3, 2, 2)

	// 全インデックスとオフセットが一対一に対応する
	seen := make(map[int]bool)
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				idx := ZoneIndex{I: i, J: j, K: k}
				off := zones.offset(idx)

				assert.GreaterOrEqual(t, off, 0)
				assert.Less(t, off, zones.n_total())
				assert.False(t, seen[off])
				seen[off] = true

				assert.Equal(t, idx, zones.index(off))
			}
		}
	}
}

func TestZonesOffsetOutOfRange(t *testing.T) {
	zones := test_zones(t, 3, 2, 2)

	assert.Panics(t, func() { zones.offset(ZoneIndex{I: 3, J: 0, K: 0}) })
	assert.Panics(t, func() { zones.offset(ZoneIndex{I: 0, J: -1, K: 0}) })
	assert.Panics(t, func() { zones.offset(ZoneIndex{I: 0, J: 0, K: 2}) })
}

func TestGeometryConfigValidate(t *testing.T) {
	// 整合した条件は検証を通過する
	assert.NoError(t, test_geometry(4, 2, 2).validate())

	// ゾーン寸法 × 分割数がシステム寸法と整合しない
	gmt := test_geometry(4, 2, 2)
	gmt.SystemDimX = 20.0
	assert.Error(t, gmt.validate())

	// 積載率の値域違反
	gmt = test_geometry(4, 2, 2)
	gmt.PhiPack = 1.0
	assert.Error(t, gmt.validate())

	// 温度範囲の上下限が逆転
	gmt = test_geometry(4, 2, 2)
	gmt.ThetaMin = 100.0
	gmt.ThetaMax = -50.0
	assert.Error(t, gmt.validate())

	// 初期温度が範囲外
	gmt = test_geometry(4, 2, 2)
	gmt.ThetaInit = 150.0
	assert.Error(t, gmt.validate())
}
