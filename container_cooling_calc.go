package main

import (
	"encoding/json"
	"flag"
	"io/ioutil"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// 計算ケース（幾何形状・境界条件・品目・冷却ユニット）
type CaseData struct {
	Geometry    GeometryConfig    `json:"geometry"`
	Boundary    BoundaryConfig    `json:"boundary"`
	Commodity   string            `json:"commodity"`
	Packaging   string            `json:"packaging"`
	CoolingUnit CoolingSettings   `json:"cooling_unit"`
	PowerSupply PowerSupplyConfig `json:"power_supply"`
}

// 実行設定（settings.ini から読み込む）
type RunSettings struct {
	DurationS       float64 // 計算時間, s
	RecordIntervalS float64 // 記録間隔, s
	Seed            uint64  // 乱流変動の乱数シード（0 の場合は変動なし）
	CommodityFile   string  // 品目物性値CSVファイルのパス（空の場合は既定テーブル）
	PackagingFile   string  // 包装材物性値CSVファイルのパス（空の場合は既定テーブル）
	AmbientFile     string  // 外気温度スケジュールCSVファイルのパス（空の場合は定数境界）
}

// 実行設定を読み込む。ファイルが存在しない場合は既定値とする。
func load_run_settings(file_path string) *RunSettings {
	stg := &RunSettings{
		DurationS:       3600.0,
		RecordIntervalS: 60.0,
	}

	file, err := ini.Load(file_path)
	if err != nil {
		log.Warnf("設定ファイル `%s` を読み込めないため既定値を使用する: %v", file_path, err)
		return stg
	}

	sec := file.Section("run")
	stg.DurationS = sec.Key("duration_s").MustFloat64(3600.0)
	stg.RecordIntervalS = sec.Key("record_interval_s").MustFloat64(60.0)
	stg.Seed = sec.Key("seed").MustUint64(0)
	stg.CommodityFile = sec.Key("commodity_file").MustString("")
	stg.PackagingFile = sec.Key("packaging_file").MustString("")
	stg.AmbientFile = sec.Key("ambient_schedule").MustString("")

	return stg
}

/*
冷却計算処理の実行

    Args:
        case_data_path: 計算ケースJSONファイルへのパス
        settings_path: 実行設定iniファイルへのパス
        output_data_dir: 出力フォルダへのパス
*/
func run(case_data_path string, settings_path string, output_data_dir string) {
	// ---- 事前準備 ----

	// 出力ディレクトリの作成
	if _, err := os.Stat(output_data_dir); os.IsNotExist(err) {
		os.Mkdir(output_data_dir, 0755)
	}

	// 実行設定の読み込み
	stg := load_run_settings(settings_path)

	// 計算ケースJSONファイルの読み込み
	log.Info("計算ケースJSONファイルの読み込み開始")
	bytes, err := ioutil.ReadFile(case_data_path)
	if err != nil {
		log.Fatal(err)
	}

	var cd CaseData
	if err := json.Unmarshal(bytes, &cd); err != nil {
		log.Fatal(err)
	}

	// 品目・包装材の物性値
	cmd, err := get_commodity(cd.Commodity, stg.CommodityFile)
	if err != nil {
		log.Fatal(err)
	}
	pkg, err := get_packaging(cd.Packaging, stg.PackagingFile)
	if err != nil {
		log.Fatal(err)
	}

	// ---- 計算 ----

	sqc, err := NewSequence(&cd.Geometry, &cd.Boundary, cmd, pkg, cd.CoolingUnit, cd.PowerSupply)
	if err != nil {
		log.Fatal(err)
	}

	if stg.Seed != 0 {
		sqc.set_fluctuation_seed(stg.Seed)
	}

	if stg.AmbientFile != "" {
		amb, err := load_ambient_schedule(stg.AmbientFile)
		if err != nil {
			log.Fatal(err)
		}
		sqc.set_ambient_schedule(amb)
	}

	rec := NewRecorder()

	if err := sqc.run(stg.DurationS, stg.RecordIntervalS, rec); err != nil {
		log.Fatal(err)
	}

	// ---- 計算結果ファイルの保存 ----

	log.Infof("計算結果を `%s` に保存する", output_data_dir)
	if err := rec.save(output_data_dir); err != nil {
		log.Fatal(err)
	}
}

func main() {
	var case_data string
	flag.StringVar(&case_data, "input", "example/case_example1.json", "計算を実行するJSONファイル")

	var settings string
	flag.StringVar(&settings, "settings", "settings.ini", "実行設定iniファイル")

	var output_data_dir string
	flag.StringVar(&output_data_dir, "o", ".", "出力フォルダ")

	var log_level string
	flag.StringVar(&log_level, "log", "info", "ログレベルを指定します。")

	// 引数を受け取る
	flag.Parse()

	if lvl, err := log.ParseLevel(log_level); err == nil {
		log.SetLevel(lvl)
	}

	start := time.Now()

	run(case_data, settings, output_data_dir)

	log.Infof("elapsed_time: %v", time.Since(start))
}
