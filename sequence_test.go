package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// テスト用の幾何形状の計算条件を生成する。
func test_geometry(n_zone int, n_layer int, n_pallet int) *GeometryConfig {
	return &GeometryConfig{
		ZoneDimX:   3.0,
		ZoneDimY:   1.15,
		ZoneDimZ:   1.2,
		SystemDimX: 3.0 * float64(n_zone),
		SystemDimY: 1.15 * float64(n_pallet),
		SystemDimZ: 1.2 * float64(n_layer),
		NZone:      n_zone,
		NLayer:     n_layer,
		NPallet:    n_pallet,
		PhiPack:    0.55,
		ThetaInit:  20.0,
		ThetaMin:   -50.0,
		ThetaMax:   100.0,
		Tolerances: get_default_tolerances(),
	}
}

// テスト用の境界条件を生成する。
func test_boundary() *BoundaryConfig {
	return &BoundaryConfig{
		ThetaWall:  5.0,
		ThetaInlet: 5.0,
		XInlet:     0.004,
		PInlet:     101425.0,
		POutlet:    101325.0,
	}
}

// テスト用の冷却ユニットの設定値を生成する。
func test_cooling_settings() CoolingSettings {
	return CoolingSettings{
		QThermoMax:      12000.0,
		ThetaCoilMin:    -5.0,
		ThetaTarget:     5.0,
		RHTarget:        0.9,
		TCPITarget:      0.8,
		Gamma:           0.5,
		ETurbGain:       0.3,
		ControlInterval: 300.0,
		SigmaTheta:      2.0,
		SigmaX:          0.001,
		FrostLimit:      5.0,
	}
}

// テスト用の電源の設定値を生成する。
func test_power_supply() PowerSupplyConfig {
	return PowerSupplyConfig{QMaxElectrical: 15000.0}
}

// テスト用の計算シーケンスを生成する。
func test_sequence(t *testing.T, n_zone int, n_layer int, n_pallet int) *Sequence {
	t.Helper()

	cmd, err := get_commodity("apple", "")
	require.NoError(t, err)
	pkg, err := get_packaging("corrugated_box", "")
	require.NoError(t, err)

	sqc, err := NewSequence(
		test_geometry(n_zone, n_layer, n_pallet), test_boundary(),
		cmd, pkg, test_cooling_settings(), test_power_supply())
	require.NoError(t, err)

	return sqc
}

func TestNewSequenceValidatesConfig(t *testing.T) {
	cmd, err := get_commodity("apple", "")
	require.NoError(t, err)
	pkg, err := get_packaging("corrugated_box", "")
	require.NoError(t, err)

	// 幾何形状の不整合
	gmt := test_geometry(4, 2, 2)
	gmt.SystemDimX = 20.0
	_, err = NewSequence(gmt, test_boundary(), cmd, pkg, test_cooling_settings(), test_power_supply())
	assert.Error(t, err)

	// 流れが駆動されない境界条件
	bdr := test_boundary()
	bdr.PInlet = bdr.POutlet
	_, err = NewSequence(test_geometry(4, 2, 2), bdr, cmd, pkg, test_cooling_settings(), test_power_supply())
	assert.Error(t, err)
}

func TestRunTickBasics(t *testing.T) {
	sqc := test_sequence(t, 1, 1, 1)

	snap, err := sqc.run_tick()
	require.NoError(t, err)

	assert.Greater(t, snap.DeltaT, 0.0)
	assert.LessOrEqual(t, snap.DeltaT, dt_max)
	assert.InDelta(t, snap.DeltaT, snap.Time, 1.0e-12)

	// 質量・エネルギーの保存残差は状態の再計算により恒等的にゼロとなる
	assert.InDelta(t, 0.0, snap.MassResidualMax, 1.0e-9)
	assert.InDelta(t, 0.0, snap.EnergyResidualMax, 1.0e-9)
}

func TestSingleZoneCooling(t *testing.T) {
	sqc := test_sequence(t, 1, 1, 1)

	// 初期温度 20 degree C、給気・壁面温度 5 degree C の単一ゾーンを 300 秒計算する
	for sqc.get_time() < 300.0 {
		_, err := sqc.run_tick()
		require.NoError(t, err)
	}

	st := sqc.get_conditions().zone_states[0]

	// 圧力勾配により流速は初期値から加速される
	assert.Greater(t, st.v, 0.01)

	// 空気温度は給気温度へ向かって低下し、給気温度を下回らない（オーバーシュートなし）
	assert.Less(t, st.theta_a, 20.0)
	assert.GreaterOrEqual(t, st.theta_a, 5.0-1.0e-6)

	// 産品温度は冷却により低下する
	assert.Less(t, st.theta_p, 19.9)
	assert.GreaterOrEqual(t, st.theta_p, 5.0-1.0e-6)

	// 蓄熱量は初期値から減少する
	e_init := get_rho_a(20.0, st.x_a, st.p) * sqc.zones.v_air * get_c_a() * 20.0
	assert.Less(t, st.e, e_init)

	// 絶対湿度は飽和絶対湿度を超えない
	x_s, err := get_x_s(st.theta_a, st.p)
	require.NoError(t, err)
	assert.LessOrEqual(t, st.x_a, x_s+1.0e-12)
}

func TestUpstreamToDownstreamPropagation(t *testing.T) {
	sqc := test_sequence(t, 4, 1, 1)

	for i := 0; i < 50; i++ {
		_, err := sqc.run_tick()
		require.NoError(t, err)
	}

	c_n := sqc.get_conditions()

	// 給気に近い上流ゾーンほど空気温度は低い
	theta_a := make([]float64, 4)
	p := make([]float64, 4)
	for i := 0; i < 4; i++ {
		st := c_n.get(sqc.zones, ZoneIndex{I: i, J: 0, K: 0})
		theta_a[i] = st.theta_a
		p[i] = st.p
	}
	for i := 0; i < 3; i++ {
		assert.Less(t, theta_a[i], theta_a[i+1], "zone %d vs %d", i, i+1)

		// 静圧は流れ方向に単調に減少する
		assert.Greater(t, p[i], p[i+1], "zone %d vs %d", i, i+1)
	}
}

func TestFluctuationSeedReproducibility(t *testing.T) {
	sqc1 := test_sequence(t, 2, 2, 1)
	sqc2 := test_sequence(t, 2, 2, 1)

	sqc1.set_fluctuation_seed(42)
	sqc2.set_fluctuation_seed(42)

	for i := 0; i < 10; i++ {
		_, err := sqc1.run_tick()
		require.NoError(t, err)
		_, err = sqc2.run_tick()
		require.NoError(t, err)
	}

	// 同一シードでは全ゾーンの状態がビット単位で一致する
	v1 := sqc1.get_conditions().theta_p_zs()
	v2 := sqc2.get_conditions().theta_p_zs()
	for i := 0; i < v1.Len(); i++ {
		assert.Equal(t, v1.AtVec(i), v2.AtVec(i))
	}
}

func TestRunWithRecorder(t *testing.T) {
	sqc := test_sequence(t, 2, 1, 1)
	rec := NewRecorder()

	err := sqc.run(10.0, 1.0, rec)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, rec.n_rows(), 1)
	assert.GreaterOrEqual(t, sqc.get_time(), 10.0)
}

func TestPerformanceSnapshotBounds(t *testing.T) {
	sqc := test_sequence(t, 2, 2, 2)

	var snap *PerformanceSnapshot
	for i := 0; i < 20; i++ {
		var err error
		snap, err = sqc.run_tick()
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, snap.Uniformity, 0.0)
	assert.LessOrEqual(t, snap.Uniformity, 1.0)
	assert.GreaterOrEqual(t, snap.Effectiveness, 0.0)
	assert.LessOrEqual(t, snap.Effectiveness, 1.0)
	assert.Greater(t, snap.TCPI, 0.0)
	assert.LessOrEqual(t, snap.TCPI, 1.0)
	assert.GreaterOrEqual(t, snap.QRespTotal, 0.0)
	assert.GreaterOrEqual(t, snap.QCoolActual, 0.0)
	assert.LessOrEqual(t, snap.QCoolActual, sqc.get_cooling_unit().get_q_rated())
}
