package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/cart-service/pkg/e"
	"github.com/DRSN-tech/cart-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	"github.com/joho/godotenv"
)

const (
	StorageBackendFile   = "file"
	StorageBackendSqlite = "sqlite"
	StorageBackendRedis  = "redis"
)

type Config struct {
	Http       *HTTPConfig
	Storage    *StorageCfg
	Redis      *RedisCfg
	Kafka      *KafkaCfg // nil, если брокеры не заданы
	Storefront *StorefrontCfg
	User       *UserCfg
	LogLevel   string
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// StorageCfg описывает бэкенд локального хранилища снапшотов корзины.
type StorageCfg struct {
	Backend    string // file | sqlite | redis
	FilePath   string
	SqlitePath string
	Key        string // единственный ключ, под которым лежит снапшот
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
}

// StorefrontCfg описывает внешний API витрины.
type StorefrontCfg struct {
	BaseURL     string
	Timeout     time.Duration // таймаут синхронных вызовов (pull, checkout)
	SyncTimeout time.Duration // таймаут фоновых fire-and-forget вызовов
}

type UserCfg struct {
	ID string
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	// .env необязателен: переменные окружения имеют приоритет
	_ = godotenv.Load()

	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	storage, err := loadStorageCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	storefront, err := loadStorefrontCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:       http,
		Storage:    storage,
		Redis:      redis,
		Kafka:      kafka,
		Storefront: storefront,
		User:       loadUserCfg(),
		LogLevel:   getEnvOrDefault("LOG_LEVEL", "info"),
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 10 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func loadStorageCfg() (*StorageCfg, error) {
	const (
		defaultBackend    = StorageBackendFile
		defaultFilePath   = "data/cart.json"
		defaultSqlitePath = "data/cart.db"
		defaultKey        = "cart"
	)

	backend := strings.ToLower(getEnvOrDefault("STORAGE_BACKEND", defaultBackend))
	switch backend {
	case StorageBackendFile, StorageBackendSqlite, StorageBackendRedis:
	default:
		return nil, e.Wrap(backend, e.ErrUnknownBackend)
	}

	return &StorageCfg{
		Backend:    backend,
		FilePath:   getEnvOrDefault("STORAGE_FILE_PATH", defaultFilePath),
		SqlitePath: getEnvOrDefault("STORAGE_SQLITE_PATH", defaultSqlitePath),
		Key:        getEnvOrDefault("STORAGE_KEY", defaultKey),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
	)

	addr := getEnvOrDefault("REDIS_ADDR", defaultAddr)
	password := getEnv("REDIS_PASSWORD")
	user := getEnv("REDIS_USER")

	dbStr := getEnvOrDefault("REDIS_DB_ID", strconv.Itoa(defaultDB))
	db, err := strconv.Atoi(dbStr)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	timeout := readTimeout
	if writeTimeout > timeout {
		timeout = writeTimeout
	}

	return &RedisCfg{
		Addr:        addr,
		Password:    password,
		User:        user,
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
	}, nil
}

// loadKafkaCfg возвращает nil без ошибки, когда брокеры не заданы:
// зеркалирование событий — необязательная возможность.
func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultTopic             = "cart.events"
	)

	brokerStr := os.Getenv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, nil
	}
	brokers := strings.Split(brokerStr, ",")

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             getEnvOrDefault("KAFKA_TOPIC", defaultTopic),
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
	}, nil
}

func loadStorefrontCfg(log logger.Logger) (*StorefrontCfg, error) {
	const (
		defaultTimeout     = 10 * time.Second
		defaultSyncTimeout = 5 * time.Second
	)

	baseURL := getEnv("STOREFRONT_BASE_URL")
	if baseURL == "" {
		err := fmt.Errorf("STOREFRONT_BASE_URL is required")
		log.Errorf(err, "missing STOREFRONT_BASE_URL")
		return nil, err
	}

	timeout, err := parseDurationEnv("STOREFRONT_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid STOREFRONT_TIMEOUT")
		return nil, err
	}

	syncTimeout, err := parseDurationEnv("STOREFRONT_SYNC_TIMEOUT", defaultSyncTimeout)
	if err != nil {
		log.Errorf(err, "invalid STOREFRONT_SYNC_TIMEOUT")
		return nil, err
	}

	return &StorefrontCfg{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Timeout:     timeout,
		SyncTimeout: syncTimeout,
	}, nil
}

// loadUserCfg возвращает идентификатор пользователя для оформления заказов.
// Пока нет аутентификации, незаданный USER_ID заменяется гостевым.
func loadUserCfg() *UserCfg {
	id := getEnv("USER_ID")
	if id == "" {
		id = "guest-" + uuid.NewString()
	}

	return &UserCfg{ID: id}
}

// getEnv возвращает значение переменной окружения.
// Возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

// getEnvOrDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDurationEnv считывает длительность или возвращает значение по умолчанию.
func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
