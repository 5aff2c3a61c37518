package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig    `mapstructure:"app"`
	DB     DBConfig     `mapstructure:"db"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	Chain  ChainConfig  `mapstructure:"chain"`
	Wallet WalletConfig `mapstructure:"wallet"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	MQType   string `mapstructure:"mq_type"` // "redis" or "kafka"
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
}

// ChainConfig 链上交互配置 (Soroban RPC + 合约)
type ChainConfig struct {
	RpcUrl             string `mapstructure:"rpc_url"`
	ContractAddress    string `mapstructure:"contract_address"`
	TokenContract      string `mapstructure:"token_contract"` // 出资/退款使用的代币合约
	Network            string `mapstructure:"network"`        // TESTNET / PUBLIC
	BaseFee            uint32 `mapstructure:"base_fee"`
	TimeoutSeconds     uint32 `mapstructure:"timeout_seconds"`
	ConfirmMaxAttempts int    `mapstructure:"confirm_max_attempts"`
	ConfirmIntervalMs  int    `mapstructure:"confirm_interval_ms"`
	ReconcileSpec      string `mapstructure:"reconcile_spec"` // cron 表达式
}

type WalletConfig struct {
	KeystorePath    string `mapstructure:"keystore_path"`
	Mnemonic        string `mapstructure:"mnemonic"`          // 仅开发环境: LocalSigner 的助记词
	SignerBridgeUrl string `mapstructure:"signer_bridge_url"` // 外部签名网关地址，留空则使用 LocalSigner
	Password        string `mapstructure:"password"`          // Keystore 密码 (通常通过环境变量 WALLET_PASSWORD 传入)
}

// ConfirmInterval 返回确认轮询间隔
func (c ChainConfig) ConfirmInterval() time.Duration {
	return time.Duration(c.ConfirmIntervalMs) * time.Millisecond
}

var Global Config

func Init() {
	viper.SetConfigName("config") // name of config file (without extension)
	viper.SetConfigType("yaml")   // REQUIRED if the config file does not have the extension in the name
	viper.AddConfigPath(".")      // optionally look for config in the working directory
	viper.AddConfigPath("./config")

	// 环境变量设置
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 设置默认值
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; ignore error if desired
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			// Config file was found but another error was produced
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	log.Printf("Configuration loaded successfully. Env: %s", Global.App.Env)
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.http_port", "8080")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "boundless_user")
	viper.SetDefault("db.password", "boundless_password")
	viper.SetDefault("db.name", "boundless_db")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.mq_type", "redis")

	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})

	viper.SetDefault("chain.rpc_url", "https://soroban-testnet.stellar.org")
	viper.SetDefault("chain.contract_address", "CCCVHFXEQ5RBRRW4YX35TZ5X4D5ZZVLORIQXJB6ECI2BY5HBYBLD34PZ")
	viper.SetDefault("chain.token_contract", "CDLZFC3SYJYDZT7K67VZ75HPJVIEUVNIXF47ZG2FB2RMQQVU2HHGCYSC")
	viper.SetDefault("chain.network", "TESTNET")
	viper.SetDefault("chain.base_fee", 100)
	viper.SetDefault("chain.timeout_seconds", 120)
	viper.SetDefault("chain.confirm_max_attempts", 30)
	viper.SetDefault("chain.confirm_interval_ms", 1000)
	viper.SetDefault("chain.reconcile_spec", "@every 30s")

	viper.SetDefault("wallet.keystore_path", "wallet.json")
}
