package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"cpacsedit.dev/pkg/cpacsedit/internal/domain"
	m "cpacsedit.dev/pkg/cpacsedit/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "cpacsedit"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	logFileFlagName       = "log-file"
	verboseFlagName       = "verbose"
	lengthFlagName        = "length"
	paramsFlagName        = "params"
	outputFlagName        = "output"
	outputDirFlagName     = "output-dir"
	parallelFlagName      = "parallel"
	dryRunFlagName        = "dry-run"
	noseFlagName          = "nose"
	tailFlagName          = "tail"
	validateFlagName      = "validate"
	originPositioningName = "origin-positioning"
	profileFlagName       = "profile"
	creatorFlagName       = "creator"

	rescaleParallelKey    = "rescale.parallel"
	rescaleOutputDirKey   = "rescale.output_dir"
	generateOutputDirKey  = "generate.output_dir"
	generateNoseKey       = "generate.nose_fraction"
	generateTailKey       = "generate.tail_fraction"
	generateValidateKey   = "generate.validate"
	generateOriginPosKey  = "generate.origin_positioning"
	generateProfileKey    = "generate.profile"
	generateCreatorKey    = "generate.creator"
	defaultRescaleWorkers = 1
	defaultGenerateDir    = "cpacs"
	defaultValidate       = false
	defaultOriginPos      = false

	envPrefix = "CPACSEDIT"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".cpacsedit.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(rescaleParallelKey, defaultRescaleWorkers)
	viper.SetDefault(rescaleOutputDirKey, "")
	viper.SetDefault(generateOutputDirKey, defaultGenerateDir)
	viper.SetDefault(generateNoseKey, m.DefaultNoseFraction)
	viper.SetDefault(generateTailKey, m.DefaultTailFraction)
	viper.SetDefault(generateValidateKey, defaultValidate)
	viper.SetDefault(generateOriginPosKey, defaultOriginPos)
	viper.SetDefault(generateProfileKey, string(domain.ProfileAnalytic))
	viper.SetDefault(generateCreatorKey, domain.DefaultCreator)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}
