package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConditions(t *testing.T) {
	gmt := test_geometry(4, 2, 2)
	bdr := test_boundary()
	cmd, err := get_commodity("apple", "")
	require.NoError(t, err)
	pkg, err := get_packaging("corrugated_box", "")
	require.NoError(t, err)

	zones, err := NewZones(gmt, cmd, pkg)
	require.NoError(t, err)

	c_0, err := initialize_conditions(zones, gmt, bdr, cmd)
	require.NoError(t, err)
	require.Len(t, c_0.zone_states, zones.n_total())

	for off, st := range c_0.zone_states {
		idx := zones.index(off)

		assert.InDelta(t, gmt.ThetaInit, st.theta_p, 1.0e-12)
		assert.InDelta(t, gmt.ThetaInit, st.theta_a, 1.0e-12)
		assert.InDelta(t, cmd.WInit, st.w_p, 1.0e-12)

		// 初期湿度は飽和絶対湿度を超えない
		x_s, err := get_x_s(st.theta_a, st.p)
		require.NoError(t, err)
		assert.LessOrEqual(t, st.x_a, x_s)

		// 静圧は給気圧力と排気圧力の間で流れ方向に分布する
		assert.Less(t, st.p, bdr.PInlet)
		assert.Greater(t, st.p, bdr.POutlet)

		// 密度・質量流量・蓄熱量は状態と恒等的に整合する
		assert.InDelta(t, get_rho_a(st.theta_a, st.x_a, st.p), st.rho, 1.0e-12)
		assert.InDelta(t, st.rho*st.v*zones.a_flow, st.m_dot, 1.0e-12)
		assert.InDelta(t, st.rho*zones.v_air*get_c_a()*st.theta_a, st.e, 1.0e-6)

		// get はオフセット計算を介して同じ状態を返す
		assert.Equal(t, st, c_0.get(zones, idx))
	}

	// 下流ゾーンほど静圧は低い
	p0 := c_0.get(zones, ZoneIndex{I: 0, J: 0, K: 0}).p
	p3 := c_0.get(zones, ZoneIndex{I: 3, J: 0, K: 0}).p
	assert.Greater(t, p0, p3)
}

func TestConditionsVectors(t *testing.T) {
	gmt := test_geometry(2, 1, 1)
	bdr := test_boundary()
	cmd, err := get_commodity("apple", "")
	require.NoError(t, err)
	pkg, err := get_packaging("corrugated_box", "")
	require.NoError(t, err)

	zones, err := NewZones(gmt, cmd, pkg)
	require.NoError(t, err)

	c_0, err := initialize_conditions(zones, gmt, bdr, cmd)
	require.NoError(t, err)

	theta_p := c_0.theta_p_zs()
	assert.Equal(t, zones.n_total(), theta_p.Len())
	assert.InDelta(t, gmt.ThetaInit, theta_p.AtVec(0), 1.0e-12)

	assert.Equal(t, zones.n_total(), c_0.theta_a_zs().Len())
	assert.Equal(t, zones.n_total(), c_0.x_a_zs().Len())
	assert.Equal(t, zones.n_total(), c_0.v_zs().Len())
}
