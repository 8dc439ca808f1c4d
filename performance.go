package main

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

/*
ステップごとの性能指標

    全ゾーンの状態から毎ステップ再計算される導出量であり、
    状態のマスタとしては扱わない（読み取り専用）。
*/
type PerformanceSnapshot struct {
	Time   float64 // 時刻, s
	DeltaT float64 // 時間刻み, s

	ThetaPAve float64 // 産品温度の平均値, degree C
	ThetaPStd float64 // 産品温度の標準偏差, K
	ThetaAAve float64 // 空気温度の平均値, degree C
	XAAve     float64 // 空気絶対湿度の平均値, kg/kgDA
	VAve      float64 // 流速の平均値, m/s

	Uniformity    float64 // 温度均一性指標, - (0-1)
	Effectiveness float64 // 冷却有効度, - (0-1)

	QRespTotal  float64 // 呼吸熱の合計, W
	QCvTotal    float64 // 対流熱流の合計, W
	QEvapTotal  float64 // 蒸散熱の合計, W
	QCoolActual float64 // 実際の冷却出力, W
	MDehum      float64 // 除湿量, kg/s

	TCPI float64 // 乱流冷却性能指標, -

	MassResidualMax   float64 // 質量保存残差の最大値, -
	EnergyResidualMax float64 // エネルギー保存残差の最大値, -
}

/*
性能指標を計算する。

    Args:
        c_n: ステップn+1における全ゾーンの状態
        diags: 各ゾーンの計算診断量, [i*j*k]
        theta_p_init: 産品の初期温度, degree C
        theta_inlet: 給気温度, degree C

    Returns:
        性能指標

    Notes:
        温度均一性指標は、駆動温度差に対する産品温度の標準偏差の比を
        1 から差し引いた値とする。
        冷却有効度は、利用可能な温度差のうち実際に達成された割合とする。
*/
func get_performance_snapshot(
	c_n *Conditions,
	diags []ZoneDiagnostics,
	theta_p_init float64,
	theta_inlet float64,
) *PerformanceSnapshot {
	eps := get_eps()

	theta_p := c_n.theta_p_zs().RawVector().Data
	theta_a := c_n.theta_a_zs().RawVector().Data
	x_a := c_n.x_a_zs().RawVector().Data
	v := c_n.v_zs().RawVector().Data

	theta_p_ave := stat.Mean(theta_p, nil)

	var theta_p_std float64
	if len(theta_p) > 1 {
		theta_p_std = stat.StdDev(theta_p, nil)
	}

	// 温度均一性指標, -
	uniformity := 1.0 - theta_p_std/math.Max(math.Abs(theta_p_ave-theta_inlet), eps)
	uniformity = math.Min(math.Max(uniformity, 0.0), 1.0)

	// 冷却有効度, -
	effectiveness := (theta_p_init - theta_p_ave) / math.Max(theta_p_init-theta_inlet, eps)
	effectiveness = math.Min(math.Max(effectiveness, 0.0), 1.0)

	var q_resp, q_cv, q_evap float64
	for _, d := range diags {
		q_resp += d.q_resp
		q_cv += d.q_cv
		q_evap += d.q_evap
	}

	return &PerformanceSnapshot{
		ThetaPAve:     theta_p_ave,
		ThetaPStd:     theta_p_std,
		ThetaAAve:     stat.Mean(theta_a, nil),
		XAAve:         stat.Mean(x_a, nil),
		VAve:          stat.Mean(v, nil),
		Uniformity:    uniformity,
		Effectiveness: effectiveness,
		QRespTotal:    q_resp,
		QCvTotal:      q_cv,
		QEvapTotal:    q_evap,
	}
}
