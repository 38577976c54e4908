package log

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var L *zap.Logger

func init() {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeCaller = func(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		projectName := "clipchain"

		index := strings.Index(caller.File, projectName)
		if index != -1 {
			enc.AppendString(caller.File[index:] + ":" + strconv.Itoa(caller.Line))
		} else {
			enc.AppendString(caller.TrimmedPath())
		}
	}
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	core := zapcore.NewCore(
		encoder,
		zapcore.AddSync(os.Stdout),
		level(),
	)
	L = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
}

// LOG_LEVEL=debug|info|warn|error，默认 info
func level() zapcore.Level {
	lvl, err := zapcore.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return zap.InfoLevel
	}
	return lvl
}
