package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunTickZoneInvalidDt(t *testing.T) {
	gmt := test_geometry(1, 1, 1)
	bdr := test_boundary()
	cmd, err := get_commodity("apple", "")
	require.NoError(t, err)
	pkg, err := get_packaging("corrugated_box", "")
	require.NoError(t, err)

	zones, err := NewZones(gmt, cmd, pkg)
	require.NoError(t, err)

	c_0, err := initialize_conditions(zones, gmt, bdr, cmd)
	require.NoError(t, err)

	st := c_0.zone_states[0]
	inlet := InletState{theta_a: bdr.ThetaInlet, x_a: bdr.XInlet, p: bdr.PInlet}
	idx := ZoneIndex{I: 0, J: 0, K: 0}

	for _, dt := range []float64{0.0, -1.0, math.Inf(1), math.NaN()} {
		_, _, err := run_tick_zone(st, inlet, dt, zones, idx, gmt, bdr, cmd, pkg, 1.0, 5.0, nil)
		assert.Error(t, err, "dt=%f", dt)
	}
}

func TestRunTickZoneSingleStep(t *testing.T) {
	gmt := test_geometry(1, 1, 1)
	bdr := test_boundary()
	cmd, err := get_commodity("apple", "")
	require.NoError(t, err)
	pkg, err := get_packaging("corrugated_box", "")
	require.NoError(t, err)

	zones, err := NewZones(gmt, cmd, pkg)
	require.NoError(t, err)

	c_0, err := initialize_conditions(zones, gmt, bdr, cmd)
	require.NoError(t, err)

	st := c_0.zone_states[0]
	inlet := InletState{theta_a: bdr.ThetaInlet, x_a: bdr.XInlet, p: bdr.PInlet}
	idx := ZoneIndex{I: 0, J: 0, K: 0}

	new_st, diag, err := run_tick_zone(st, inlet, 0.1, zones, idx, gmt, bdr, cmd, pkg, 1.0, 5.0, nil)
	require.NoError(t, err)

	// 圧力勾配により加速される
	assert.Greater(t, new_st.v, st.v)

	// 冷たい給気と壁面により空気温度は低下する
	assert.Less(t, new_st.theta_a, st.theta_a)

	// 質量流量・蓄熱量は新しい状態と恒等的に整合する
	assert.InDelta(t, new_st.rho*new_st.v*zones.a_flow, new_st.m_dot, 1.0e-12)
	assert.InDelta(t, new_st.rho*zones.v_air*get_c_a()*new_st.theta_a, new_st.e, 1.0e-6)

	// 静圧は入口静圧から圧力損失分だけ低下する
	assert.LessOrEqual(t, new_st.p, inlet.p)

	// 温度範囲と飽和絶対湿度のクランプ
	assert.GreaterOrEqual(t, new_st.theta_a, gmt.ThetaMin)
	assert.LessOrEqual(t, new_st.theta_a, gmt.ThetaMax)
	x_s, err := get_x_s(new_st.theta_a, new_st.p)
	require.NoError(t, err)
	assert.LessOrEqual(t, new_st.x_a, x_s+1.0e-12)

	// 流れの発達係数は [0, 1) の範囲内
	assert.GreaterOrEqual(t, new_st.f_dev, 0.0)
	assert.Less(t, new_st.f_dev, 1.0)

	// 診断量の符号と範囲
	assert.GreaterOrEqual(t, diag.re, 0.0)
	assert.GreaterOrEqual(t, diag.q_resp, 0.0)
	assert.GreaterOrEqual(t, diag.m_evap, 0.0)
	assert.GreaterOrEqual(t, diag.eta, 0.0)
	assert.LessOrEqual(t, diag.eta, 1.0)
}

func TestRunTickZoneTurbulenceDiagnostics(t *testing.T) {
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

	// 流速を乱流域まで引き上げ、産品より低温の空気とした状態を作る
	st := c_0.zone_states[0]
	st.v = 5.0
	st.theta_a = 10.0
	st.m_dot = st.rho * st.v * zones.a_flow

	inlet := InletState{theta_a: bdr.ThetaInlet, x_a: bdr.XInlet, p: bdr.PInlet}
	idx := ZoneIndex{I: 0, J: 0, K: 0}

	_, diag, err := run_tick_zone(st, inlet, 0.01, zones, idx, gmt, bdr, cmd, pkg, 1.0, 5.0, nil)
	require.NoError(t, err)

	assert.Greater(t, diag.re, re_turbulent)
	assert.Greater(t, diag.ti, 0.0)

	// 乱流域では対流熱流が大きく、産品から空気へ正の熱流となる
	assert.Greater(t, diag.q_cv, 0.0)
}
