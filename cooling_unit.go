package main

import (
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"gonum.org/v1/gonum/stat"
)

// 運転状態
type OperationMode int

// 運転状態
const (
	COOLING OperationMode = iota + 1 // COOLING : 冷却運転
	DEFROST                          // DEFROST : 除霜運転
	STOP                             // STOP : 停止
)

// 除湿量の数値ノイズ抑制のための下限値, kg/s
const dehum_floor = 1.0e-9

// 冷却ユニットの設定値
type CoolingSettings struct {
	QThermoMax      float64 `json:"q_thermo_max" validate:"gt=0"`          // 熱力学的な最大冷却能力, W
	ThetaCoilMin    float64 `json:"theta_coil_min"`                        // コイル下限温度, degree C
	ThetaTarget     float64 `json:"theta_target"`                          // 目標温度, degree C
	RHTarget        float64 `json:"rh_target" validate:"gt=0,lte=1"`       // 目標相対湿度, -
	TCPITarget      float64 `json:"tcpi_target" validate:"gt=0,lte=1"`     // TCPI の目標値, -
	Gamma           float64 `json:"gamma" validate:"gte=0"`                // 効率ばらつきのペナルティ係数, -
	ETurbGain       float64 `json:"e_turb_gain" validate:"gte=0"`          // 乱流ペナルティ係数, -
	ControlInterval float64 `json:"control_interval" validate:"gt=0"`      // 制御更新間隔, s
	SigmaTheta      float64 `json:"sigma_theta" validate:"gt=0"`           // 除湿ゲートの温度スケール, K
	SigmaX          float64 `json:"sigma_x" validate:"gt=0"`               // 除湿ゲートの湿度スケール, kg/kgDA
	FrostLimit      float64 `json:"frost_limit" validate:"gt=0"`           // 除霜運転に移行する着霜量, kg
}

// 電源の設定値
type PowerSupplyConfig struct {
	QMaxElectrical float64 `json:"q_max_electrical" validate:"gt=0"` // 電源による最大冷却能力, W
}

/*
冷却ユニット

    コイル温度・露点温度・現在冷却能力・定格冷却能力を状態として持ち、
    TCPI に基づくフィードバック制御により冷却能力とコイル温度を調節する。
    状態の更新は制御更新間隔ごとに高々1回とする（電源の再設定のみ例外）。
*/
type CoolingUnit struct {
	stg CoolingSettings

	theta_coil float64 // コイル温度, degree C
	theta_dew  float64 // 露点温度, degree C
	q_current  float64 // 現在の冷却能力, W
	q_rated    float64 // 定格冷却能力, W

	tcpi    float64       // 乱流冷却性能指標, -
	t_last  float64       // 最後に制御更新を行った時刻, s
	m_frost float64       // 着霜量の積算値, kg
	mode    OperationMode // 運転状態
}

/*
冷却ユニットを構築する。

    Args:
        stg: 冷却ユニットの設定値
        ps: 電源の設定値
        p: 全圧, Pa

    Returns:
        冷却ユニット

    Notes:
        定格冷却能力は熱力学的上限と電源上限の小さい方とする。
        露点温度は目標温度・目標相対湿度から Magnus 式により導出する。
*/
func NewCoolingUnit(stg CoolingSettings, ps PowerSupplyConfig, p float64) (*CoolingUnit, error) {
	v := validator.New()
	if err := v.Struct(stg); err != nil {
		return nil, fmt.Errorf("冷却ユニットの設定値が不正である: %w", err)
	}
	if err := v.Struct(ps); err != nil {
		return nil, fmt.Errorf("電源の設定値が不正である: %w", err)
	}
	if stg.ThetaCoilMin >= stg.ThetaTarget {
		return nil, fmt.Errorf(
			"コイル下限温度 %f degree C が目標温度 %f degree C 以上である",
			stg.ThetaCoilMin, stg.ThetaTarget)
	}

	// 目標状態の絶対湿度, kg/kgDA
	p_v := get_p_vs(stg.ThetaTarget) * stg.RHTarget
	x_target := 0.622 * p_v / (p - p_v)

	return &CoolingUnit{
		stg:        stg,
		theta_coil: stg.ThetaTarget,
		theta_dew:  get_theta_dew(x_target, p),
		q_current:  0.0,
		q_rated:    math.Min(stg.QThermoMax, ps.QMaxElectrical),
		tcpi:       1.0,
		t_last:     math.Inf(-1),
		mode:       STOP,
	}, nil
}

// 現在の TCPI を取得する。
func (self *CoolingUnit) get_tcpi() float64 {
	return self.tcpi
}

// 現在のコイル温度を取得する, degree C
func (self *CoolingUnit) get_theta_coil() float64 {
	return self.theta_coil
}

// 現在の冷却能力を取得する, W
func (self *CoolingUnit) get_q_current() float64 {
	return self.q_current
}

// 定格冷却能力を取得する, W
func (self *CoolingUnit) get_q_rated() float64 {
	return self.q_rated
}

// 現在の運転状態を取得する。
func (self *CoolingUnit) get_mode() OperationMode {
	return self.mode
}

/*
TCPI（乱流冷却性能指標）を計算する。

    Args:
        eta_zs: 各ゾーンの冷却効率, -, [i*j*k]
        ti_ave: 乱流強度の平均値, -
        gamma: 効率ばらつきのペナルティ係数, -
        e_gain: 乱流ペナルティ係数, -

    Returns:
        TCPI, - (0, 1]

    Notes:
        TCPI = (平均効率 / 乱流ペナルティ係数) * (1 - gamma * 効率の標準偏差 / 平均効率)
*/
func get_tcpi_value(eta_zs []float64, ti_ave float64, gamma float64, e_gain float64) float64 {
	eps := get_eps()

	eta_ave := stat.Mean(eta_zs, nil)

	var eta_std float64
	if len(eta_zs) > 1 {
		eta_std = stat.StdDev(eta_zs, nil)
	}

	// 乱流ペナルティ係数, -
	e_factor := 1.0 + e_gain*ti_ave

	tcpi := (eta_ave / e_factor) * (1.0 - gamma*eta_std/math.Max(eta_ave, eps))

	return math.Min(math.Max(tcpi, eps), 1.0)
}

/*
冷却負荷と TCPI から実際の冷却出力を計算する。

    Args:
        q_load: 冷却負荷, W
        tcpi: 乱流冷却性能指標, -

    Returns:
        冷却出力, W

    Notes:
        指数 1/TCPI による収穫逓減の形とする。負荷の増加に対して単調増加、
        TCPI の増加に対して単調減少となる。出力は定格冷却能力を超えない。
*/
func (self *CoolingUnit) get_actual_cooling_power(q_load float64, tcpi float64) float64 {
	if q_load <= 0.0 {
		return 0.0
	}

	q := math.Pow(q_load, 1.0/math.Max(tcpi, 0.1))

	return math.Min(q, self.q_rated)
}

/*
冷却能力とコイル温度を更新する。

    Args:
        eta_zs: 各ゾーンの冷却効率, -, [i*j*k]
        ti_ave: 乱流強度の平均値, -
        t_now: 現在時刻, s

    Returns:
        更新を実行した場合 true

    Notes:
        前回更新から制御更新間隔が経過していない場合は何もしない（レートリミット）。
        更新時は次の処理を行う。
            (a) TCPI の再計算
            (b) 冷却能力 = 定格 * (TCPI目標値 / max(TCPI, 0.1)) を [0, 定格] にクランプ
            (c) コイル温度を能力比に応じて目標温度と下限温度の間で線形に導出
        着霜量が上限を超えている場合は除霜運転に移行し冷却を停止する。
*/
func (self *CoolingUnit) update_cooling_power(eta_zs []float64, ti_ave float64, t_now float64) bool {
	if t_now-self.t_last < self.stg.ControlInterval {
		return false
	}

	self.t_last = t_now

	// 除霜運転への移行判定
	if self.m_frost >= self.stg.FrostLimit {
		self.mode = DEFROST
		self.q_current = 0.0
		self.theta_coil = self.stg.ThetaTarget
		self.m_frost = 0.0
		return true
	}

	// (a) TCPI の再計算
	self.tcpi = get_tcpi_value(eta_zs, ti_ave, self.stg.Gamma, self.stg.ETurbGain)

	// (b) 冷却能力, W
	q := self.q_rated * (self.stg.TCPITarget / math.Max(self.tcpi, 0.1))
	self.q_current = math.Min(math.Max(q, 0.0), self.q_rated)

	// (c) コイル温度, degree C
	// 能力比 0 で目標温度、能力比 1 で下限温度となる線形補間とする。
	ratio := self.q_current / math.Max(self.q_rated, get_eps())
	self.theta_coil = self.stg.ThetaTarget + (self.stg.ThetaCoilMin-self.stg.ThetaTarget)*ratio

	if self.q_current > 0.0 {
		self.mode = COOLING
	} else {
		self.mode = STOP
	}

	return true
}

/*
除湿量を計算する。

    Args:
        theta_a: 還気温度, degree C
        x_a: 還気絶対湿度, kg/kgDA
        p: 全圧, Pa
        m_dot: 還気質量流量, kg/s

    Returns:
        除湿量, kg/s

    Notes:
        不連続な微分を避けるため、しきい値ではなく2つの滑らかな活性化ゲート
        （露点に対する温度超過・コイル飽和湿度に対する湿度超過）を用いる。
        どちらかの超過がゼロのとき除湿量は厳密にゼロとなる。
        温度ゲートのしきい値には露点温度とコイル温度の高い方を用いる
        （還気温度がコイル温度以下では結露は生じない）。
        数値ノイズ抑制のため微小値は厳密にゼロへ床処理する。
*/
func (self *CoolingUnit) calculate_dehumidification(theta_a float64, x_a float64, p float64, m_dot float64) (float64, error) {
	// コイル温度における飽和絶対湿度, kg/kgDA
	x_s_coil, err := get_x_s(self.theta_coil, p)
	if err != nil {
		return 0.0, err
	}

	// 温度ゲートのしきい値, degree C
	theta_thr := math.Max(self.theta_dew, self.theta_coil)

	g_t := _activation_gate((theta_a - theta_thr) / self.stg.SigmaTheta)
	g_x := _activation_gate((x_a - x_s_coil) / self.stg.SigmaX)

	m_dh := m_dot * (x_a - x_s_coil) * g_t * g_x

	if m_dh < dehum_floor {
		return 0.0, nil
	}

	return m_dh, nil
}

// 除湿による着霜量を積算する。
func (self *CoolingUnit) accumulate_frost(m_dh float64, dt float64) {
	if self.theta_coil < 0.0 {
		self.m_frost += m_dh * dt
	}
}

/*
電源の設定を更新する。

    Args:
        ps: 電源の設定値

    Notes:
        定格冷却能力を直ちに min(熱力学的上限, 電源上限) に再クランプし、
        現在の冷却能力が新しい定格を超える場合は引き下げる。
        制御更新間隔によるレートリミットの対象外で唯一の遷移である。
*/
func (self *CoolingUnit) update_power_supply(ps PowerSupplyConfig) error {
	if err := validator.New().Struct(ps); err != nil {
		return fmt.Errorf("電源の設定値が不正である: %w", err)
	}

	self.q_rated = math.Min(self.stg.QThermoMax, ps.QMaxElectrical)

	if self.q_current > self.q_rated {
		self.q_current = self.q_rated
	}

	return nil
}

/*
滑らかな活性化ゲート

    Args:
        z: 正規化された超過量, -

    Returns:
        ゲート値, - [0, 1)

    Notes:
        z <= 0 で厳密にゼロ、z > 0 で tanh(z) とする。
        しきい値での値・一階微分が連続となる。
*/
func _activation_gate(z float64) float64 {
	if z <= 0.0 {
		return 0.0
	}

	return math.Tanh(z)
}
