package main

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

/*
計算シーケンス

    空間格子・境界条件・冷却ユニットを束ね、時間積分を司る。
    各ステップでは次の処理を順に行う。
        (1) 適応時間刻みの決定（全ゾーン最小値）
        (2) 各流路（層×パレット列）について上流から下流へ逐次ゾーン積分
        (3) 保存則残差の検査（許容値超過は警告ログ、致命的エラーとしない）
        (4) 還気の除湿と給気湿度の更新（再循環）
        (5) 冷却ユニットの制御更新
        (6) 性能指標の集計

    全ゾーンの状態はステップごとに丸ごと置き換え、積分途中のゾーンが
    同一ステップ内の他ゾーンの新しい状態を読むことはない。
*/
type Sequence struct {
	gmt   *GeometryConfig
	bdr   *BoundaryConfig
	cmd   *Commodity
	pkg   *Packaging
	zones *Zones
	cu    *CoolingUnit

	amb  *AmbientSchedule // 外気温度スケジュール（nil の場合は境界条件の定数値）
	fluc *distuv.Normal   // 乱流変動の正規乱数生成器（nil の場合は変動なし）

	c_n *Conditions // ステップnにおける全ゾーンの状態

	t float64 // 時刻, s
	n int     // ステップ番号

	theta_p_init float64 // 産品の初期温度, degree C
	x_in         float64 // 現在の給気絶対湿度（除湿後の還気）, kg/kgDA
}

/*
計算シーケンスを構築する。

    Args:
        gmt: 幾何形状の計算条件
        bdr: 境界条件
        cmd: 品目の物性値
        pkg: 包装材の物性値
        stg: 冷却ユニットの設定値
        ps: 電源の設定値

    Returns:
        計算シーケンス

    Notes:
        すべての計算条件の検証をここで行う。検証エラーは致命的であり、
        以降の計算は行わない。
*/
func NewSequence(
	gmt *GeometryConfig,
	bdr *BoundaryConfig,
	cmd *Commodity,
	pkg *Packaging,
	stg CoolingSettings,
	ps PowerSupplyConfig,
) (*Sequence, error) {
	if err := gmt.validate(); err != nil {
		return nil, err
	}
	if err := bdr.validate(gmt); err != nil {
		return nil, err
	}

	zones, err := NewZones(gmt, cmd, pkg)
	if err != nil {
		return nil, err
	}

	cu, err := NewCoolingUnit(stg, ps, bdr.PInlet)
	if err != nil {
		return nil, err
	}

	c_0, err := initialize_conditions(zones, gmt, bdr, cmd)
	if err != nil {
		return nil, err
	}

	return &Sequence{
		gmt:          gmt,
		bdr:          bdr,
		cmd:          cmd,
		pkg:          pkg,
		zones:        zones,
		cu:           cu,
		c_n:          c_0,
		theta_p_init: gmt.ThetaInit,
		x_in:         bdr.XInlet,
	}, nil
}

// 外気温度スケジュールを設定する。
func (self *Sequence) set_ambient_schedule(amb *AmbientSchedule) {
	self.amb = amb
}

/*
乱流変動の乱数生成器を設定する。

    Args:
        seed: 乱数シード

    Notes:
        再現性のためシードを明示的に与える。設定しない場合は変動項なしの
        決定論的な計算となる。
*/
func (self *Sequence) set_fluctuation_seed(seed uint64) {
	self.fluc = &distuv.Normal{
		Mu:    0.0,
		Sigma: 1.0,
		Src:   rand.NewSource(seed),
	}
}

// 現在の全ゾーンの状態を取得する。
func (self *Sequence) get_conditions() *Conditions {
	return self.c_n
}

// 冷却ユニットを取得する。
func (self *Sequence) get_cooling_unit() *CoolingUnit {
	return self.cu
}

// 現在時刻を取得する, s
func (self *Sequence) get_time() float64 {
	return self.t
}

/*
1ステップ計算を進める。

    Returns:
        性能指標、エラー

    Notes:
        流れ方向に依存関係があるため、各流路内のゾーンは必ず上流から下流の順に
        逐次積分する（ゾーン i の出口がゾーン i+1 の入口境界条件となる）。
        異なる層・パレット列は互いの同一ステップの出力を読まないため順序は任意である。
*/
func (self *Sequence) run_tick() (*PerformanceSnapshot, error) {
	// (1) 時間刻み, s（毎ステップ再計算・全ゾーン共通）
	dt := get_delta_t(self.c_n, self.zones)
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt <= 0.0 {
		return nil, fmt.Errorf("ステップ %d において時間刻み %f s が非有限または非正である", self.n, dt)
	}

	// 給気温度, degree C（スケジュールがある場合は補間値で上書きした複製を用いる）
	bdr_n := *self.bdr
	if self.amb != nil {
		bdr_n.ThetaInlet = self.amb.get_theta_inlet(self.t)
	}

	n_total := self.zones.n_total()
	new_states := make([]ZoneState, n_total)
	diags := make([]ZoneDiagnostics, n_total)

	// (2) 流路ごとに上流から下流へ逐次積分
	for j := 0; j < self.zones.n_layer; j++ {
		for k := 0; k < self.zones.n_pallet; k++ {
			inlet := InletState{
				theta_a: bdr_n.ThetaInlet,
				x_a:     self.x_in,
				p:       bdr_n.PInlet,
			}

			for i := 0; i < self.zones.n_zone; i++ {
				idx := ZoneIndex{I: i, J: j, K: k}
				off := self.zones.offset(idx)

				new_st, diag, err := run_tick_zone(
					self.c_n.zone_states[off], inlet, dt,
					self.zones, idx, self.gmt, &bdr_n, self.cmd, self.pkg,
					self.cu.get_tcpi(), self.cu.get_theta_coil(), self.fluc,
				)
				if err != nil {
					return nil, fmt.Errorf("ステップ %d: %w", self.n, err)
				}

				new_states[off] = new_st
				diags[off] = diag

				// ゾーン i の出口がゾーン i+1 の入口境界条件となる
				inlet = InletState{theta_a: new_st.theta_a, x_a: new_st.x_a, p: new_st.p}
			}
		}
	}

	c_n_plus := &Conditions{zone_states: new_states}

	// (3) 保存則残差の検査
	mass_res_max, energy_res_max := self._check_conservation(c_n_plus)

	// (4) 還気の除湿と給気湿度の更新（再循環）
	m_dh, err := self._dehumidify_return_air(c_n_plus, &bdr_n, dt)
	if err != nil {
		return nil, fmt.Errorf("ステップ %d: %w", self.n, err)
	}

	// (5) 冷却ユニットの制御更新
	eta_zs := make([]float64, n_total)
	ti_zs := make([]float64, n_total)
	for off, d := range diags {
		eta_zs[off] = d.eta
		ti_zs[off] = d.ti
	}
	ti_ave := floats.Sum(ti_zs) / float64(n_total)

	self.cu.update_cooling_power(eta_zs, ti_ave, self.t+dt)

	// (6) 性能指標の集計
	snap := get_performance_snapshot(c_n_plus, diags, self.theta_p_init, bdr_n.ThetaInlet)
	snap.Time = self.t + dt
	snap.DeltaT = dt
	snap.TCPI = self.cu.get_tcpi()
	snap.MDehum = m_dh
	snap.MassResidualMax = mass_res_max
	snap.EnergyResidualMax = energy_res_max
	snap.QCoolActual = self.cu.get_actual_cooling_power(
		snap.QCvTotal+snap.QRespTotal, self.cu.get_tcpi())

	// 状態の置き換え（部分的な書き換えはしない）
	self.c_n = c_n_plus
	self.t += dt
	self.n++

	return snap, nil
}

/*
保存則残差を検査する。

    Args:
        c *Conditions: 検査対象の全ゾーンの状態

    Returns:
        質量保存残差の最大値, エネルギー保存残差の最大値

    Notes:
        質量: |m_dot - rho v A| / |m_dot|
        エネルギー: |e - rho V c theta| / |e|
        許容値を超えた場合は警告ログを出す。保存的な時間刻みを用いた陽解法では
        残差は小さく有界となるはずであり、増大し続ける場合はモデルの欠陥を示す。
*/
func (self *Sequence) _check_conservation(c *Conditions) (float64, float64) {
	eps := get_eps()
	tol := self.gmt.Tolerances.Conservation

	var mass_res_max, energy_res_max float64

	for off, st := range c.zone_states {
		mass_res := math.Abs(st.m_dot-st.rho*st.v*self.zones.a_flow) / math.Max(math.Abs(st.m_dot), eps)
		energy_res := math.Abs(st.e-st.rho*self.zones.v_air*get_c_a()*st.theta_a) / math.Max(math.Abs(st.e), eps)

		if mass_res > tol {
			log.WithFields(log.Fields{
				"zone":     self.zones.index(off).String(),
				"residual": mass_res,
				"tol":      tol,
			}).Warn("質量保存残差が許容値を超えた")
		}
		if energy_res > tol {
			log.WithFields(log.Fields{
				"zone":     self.zones.index(off).String(),
				"residual": energy_res,
				"tol":      tol,
			}).Warn("エネルギー保存残差が許容値を超えた")
		}

		mass_res_max = math.Max(mass_res_max, mass_res)
		energy_res_max = math.Max(energy_res_max, energy_res)
	}

	return mass_res_max, energy_res_max
}

/*
還気を除湿し、次ステップの給気絶対湿度を更新する。

    Args:
        c: ステップn+1における全ゾーンの状態
        bdr_n: 当該ステップの境界条件
        dt: 時間刻み, s

    Returns:
        除湿量, kg/s

    Notes:
        最下流ゾーンの出口状態を質量流量で重み付け平均した還気を冷却ユニットに通し、
        除湿後の絶対湿度を次ステップの給気湿度とする（空気は再循環する）。
*/
func (self *Sequence) _dehumidify_return_air(c *Conditions, bdr_n *BoundaryConfig, dt float64) (float64, error) {
	eps := get_eps()

	// 還気状態（最下流ゾーン出口の質量流量重み付け平均）
	var m_dot_ret, theta_ret, x_ret float64
	i_last := self.zones.n_zone - 1
	for j := 0; j < self.zones.n_layer; j++ {
		for k := 0; k < self.zones.n_pallet; k++ {
			st := c.get(self.zones, ZoneIndex{I: i_last, J: j, K: k})
			m := math.Max(st.m_dot, 0.0)
			m_dot_ret += m
			theta_ret += m * st.theta_a
			x_ret += m * st.x_a
		}
	}
	theta_ret /= math.Max(m_dot_ret, eps)
	x_ret /= math.Max(m_dot_ret, eps)

	m_dh, err := self.cu.calculate_dehumidification(theta_ret, x_ret, bdr_n.POutlet, m_dot_ret)
	if err != nil {
		return 0.0, err
	}

	self.cu.accumulate_frost(m_dh, dt)

	// 次ステップの給気絶対湿度, kg/kgDA
	self.x_in = math.Max(x_ret-m_dh/math.Max(m_dot_ret, eps), 0.0)

	return m_dh, nil
}

/*
指定した時間だけ計算を進める。

    Args:
        duration: 計算時間, s
        record_interval: 記録間隔, s
        rec: 計算結果レコーダ（nil の場合は記録しない）

    Returns:
        エラー（数値領域エラーは当該ステップで致命的として中断する）
*/
func (self *Sequence) run(duration float64, record_interval float64, rec *Recorder) error {
	log.WithFields(log.Fields{
		"duration_s": duration,
		"n_zones":    self.zones.n_total(),
	}).Info("計算開始")

	t_end := self.t + duration
	t_next_record := self.t

	for self.t < t_end {
		snap, err := self.run_tick()
		if err != nil {
			return err
		}

		if rec != nil && snap.Time >= t_next_record {
			rec.append(snap, self.c_n, self.zones, self.cu)
			t_next_record += record_interval
		}
	}

	log.WithFields(log.Fields{
		"n_steps": self.n,
		"time_s":  self.t,
	}).Info("計算終了")

	return nil
}
