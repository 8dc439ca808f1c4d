package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDeltaTZoneConvectiveLimit(t *testing.T) {
	// 流速 2 m/s、ゾーン長さ 0.75 m では移流条件により dt <= 0.0375 s となる
	dx := 0.75
	v := 2.0
	rho := 1.2
	a_flow := 1.0
	m_dot := rho * v * a_flow
	alpha := 2.0e-5

	dt := get_delta_t_zone(dx, v, alpha, rho, a_flow, m_dot)

	assert.LessOrEqual(t, dt, 0.0375)
	assert.InDelta(t, 0.0375, dt, 1.0e-12)
}

func TestGetDeltaTZoneMinOfScales(t *testing.T) {
	dx := 0.75
	rho := 1.2
	a_flow := 1.0

	// 質量流量を流速と独立に大きくすると質量流量条件が支配的となる
	dt := get_delta_t_zone(dx, 2.0, 2.0e-5, rho, a_flow, 100.0)
	assert.InDelta(t, rho*a_flow*dx/(10.0*100.0), dt, 1.0e-12)

	// 流速がほぼゼロの場合は上限でクランプされる
	dt_slow := get_delta_t_zone(dx, 1.0e-6, 2.0e-5, rho, a_flow, 1.0e-6)
	assert.InDelta(t, dt_max, dt_slow, 1.0e-12)
}

func TestGetDeltaTMinOverZones(t *testing.T) {
	gmt := test_geometry(2, 1, 1)
	cmd, err := get_commodity("apple", "")
	require.NoError(t, err)
	pkg, err := get_packaging("corrugated_box", "")
	require.NoError(t, err)

	zones, err := NewZones(gmt, cmd, pkg)
	require.NoError(t, err)

	// 速いゾーンが全体の時間刻みを決める
	st_slow := ZoneState{theta_a: 10.0, x_a: 0.004, p: 101325.0, v: 1.0, rho: 1.2, m_dot: 1.2 * 1.0 * zones.a_flow}
	st_fast := ZoneState{theta_a: 10.0, x_a: 0.004, p: 101325.0, v: 4.0, rho: 1.2, m_dot: 1.2 * 4.0 * zones.a_flow}
	c_n := &Conditions{zone_states: []ZoneState{st_slow, st_fast}}

	dt := get_delta_t(c_n, zones)
	alpha := get_alpha_a(10.0, 0.004, 101325.0)
	dt_fast := get_delta_t_zone(zones.dx, 4.0, alpha, 1.2, zones.a_flow, st_fast.m_dot)

	assert.InDelta(t, dt_fast, dt, 1.0e-12)
	assert.Less(t, dt, get_delta_t_zone(zones.dx, 1.0, alpha, 1.2, zones.a_flow, st_slow.m_dot))
}
