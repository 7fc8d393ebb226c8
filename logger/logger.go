package logger

import (
	"os"
	"path/filepath"

	zaplogfmt "github.com/jsternberg/zap-logfmt"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger      *zap.Logger
	sink        *lumberjack.Logger
	atomicLevel = zap.NewAtomicLevel()
)

// Initialize installs the global zap logger for svc. Diagnostics are written
// to stderr, stdout belongs to the log lines themselves. When logging.path is
// set a rotating file is written as well.
func Initialize(svc string) {
	logger = zap.New(zapcore.NewCore(
		zaplogfmt.NewEncoder(ProdEncoderConf()),
		zapcore.Lock(os.Stderr),
		atomicLevel,
	), zap.AddCaller(), zap.Fields(zap.String("svc", svc)))

	sink = nil
	if path := viper.GetString("logging.path"); path != "" {
		sink = &lumberjack.Logger{
			Filename:   filepath.Join(path, svc+".log"),
			MaxSize:    viper.GetInt("logging.max_size"), // megabytes
			MaxBackups: viper.GetInt("logging.max_backups"),
			MaxAge:     viper.GetInt("logging.max_age"), // days
		}
		ljWriteSyncer := zapcore.AddSync(sink)

		ljCore := zapcore.NewCore(
			zaplogfmt.NewEncoder(ProdEncoderConf()),
			ljWriteSyncer,
			atomicLevel)

		logger = logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, ljCore)
		}))
	}

	zap.ReplaceGlobals(logger)
}

// Sink returns the rotating file of the global logger, nil when logging.path
// was empty at Initialize.
func Sink() *lumberjack.Logger {
	return sink
}

func Flush() {
	if logger != nil {
		logger.Sync()
	}
}

// SetLevel changes the level of the global logger. Unknown names select info.
func SetLevel(l string) {
	atomicLevel.SetLevel(parseLevel(l))
}

// GetLevel returns the name of the current level.
func GetLevel() string {
	return atomicLevel.Level().String()
}

func parseLevel(l string) zapcore.Level {
	switch l {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func ProdEncoderConf() zapcore.EncoderConfig {
	encConf := zap.NewProductionEncoderConfig()
	encConf.EncodeTime = zapcore.RFC3339TimeEncoder

	return encConf
}
