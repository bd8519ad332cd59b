// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package pluginopts decodes the compiler plugin's option map into
// metadata.FaktOptions (spec §4.9) and loads the optional faktgo.yaml
// project-local override file.
//
// Grounded on cmd/aleutian/main.go's PersistentPreRun, which reads a YAML
// config file into a struct before any command runs; the option-map side is
// new (the plugin host passes key/value strings, not a file), so it is
// decoded by hand rather than through yaml.Unmarshal.
package pluginopts

import (
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/faktgo/faktgo/metadata"
)

// Keys the plugin host is documented to pass in its option map (spec §4.9).
const (
	KeyEnabled             = "enabled"
	KeyDebug               = "debug"
	KeyOutputDir           = "outputDir"
	KeySourceSetContext    = "sourceSetContext"
	KeyMetadataCacheInput  = "metadataCacheInput"
	KeyMetadataCacheOutput = "metadataCacheOutput"
	KeyFakeAnnotations     = "fakeAnnotations"
	KeyLogLevel            = "logLevel"
)

// annotationSeparator joins multiple annotation FQNs packed into a single
// fakeAnnotations option value.
const annotationSeparator = ","

var knownKeys = map[string]struct{}{
	KeyEnabled:             {},
	KeyDebug:               {},
	KeyOutputDir:           {},
	KeySourceSetContext:    {},
	KeyMetadataCacheInput:  {},
	KeyMetadataCacheOutput: {},
	KeyFakeAnnotations:     {},
	KeyLogLevel:            {},
}

// WarnUnknownKeys logs one warning per key in raw that isn't a recognized
// plugin option (spec §4.9: "unknown keys are ignored with a single
// warning"). It never affects decoding — call it alongside Decode, not
// instead of it.
func WarnUnknownKeys(raw map[string]string, logger *slog.Logger) {
	for k := range raw {
		if _, ok := knownKeys[k]; !ok {
			logger.Warn("faktgo: unrecognized plugin option", slog.String("key", k))
		}
	}
}

// Decode builds a metadata.FaktOptions from the plugin host's raw option
// map. Decode is tolerant by design: a missing key, an unparsable base64
// blob, or invalid JSON inside sourceSetContext never fails the build —
// the corresponding field is simply left at its zero value, matching how a
// Kotlin compiler plugin's own option decoding must never abort compilation
// over a malformed option.
func Decode(raw map[string]string) metadata.FaktOptions {
	opts := metadata.FaktOptions{
		Enabled: parseBool(raw[KeyEnabled], false),
	}

	debug := parseBool(raw[KeyDebug], false)
	opts.LogLevel = strings.ToUpper(strings.TrimSpace(raw[KeyLogLevel]))
	if opts.LogLevel == "" {
		if debug {
			opts.LogLevel = "DEBUG"
		} else {
			opts.LogLevel = "INFO"
		}
	}

	opts.OutputDirOverride = raw[KeyOutputDir]
	opts.MetadataCacheInputPath = raw[KeyMetadataCacheInput]
	opts.MetadataCacheOutputPath = raw[KeyMetadataCacheOutput]

	if v, ok := raw[KeyFakeAnnotations]; ok && v != "" {
		for _, fqn := range strings.Split(v, annotationSeparator) {
			fqn = strings.TrimSpace(fqn)
			if fqn != "" {
				opts.FakeAnnotations = append(opts.FakeAnnotations, fqn)
			}
		}
	}

	return opts
}

// DecodeSourceSetContext decodes the base64-encoded JSON payload carried by
// the sourceSetContext option. ok is false for a missing, non-base64, or
// non-JSON value — callers proceed with a zero-value context rather than
// failing.
func DecodeSourceSetContext(raw map[string]string) (metadata.SourceSetContext, bool) {
	encoded, present := raw[KeySourceSetContext]
	if !present || encoded == "" {
		return metadata.SourceSetContext{}, false
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return metadata.SourceSetContext{}, false
	}

	var ctx metadata.SourceSetContext
	if err := json.Unmarshal(data, &ctx); err != nil {
		return metadata.SourceSetContext{}, false
	}
	return ctx, true
}

func parseBool(v string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return fallback
	}
}

// ProjectConfig is the shape of an optional faktgo.yaml file sitting next to
// the build, letting a project pin defaults the plugin option map doesn't
// override per-module.
type ProjectConfig struct {
	OutputDir       string   `yaml:"outputDir"`
	FakeAnnotations []string `yaml:"fakeAnnotations"`
	LogLevel        string   `yaml:"logLevel"`
}

// LoadProjectConfig reads and parses path (typically "faktgo.yaml"). A
// missing file is not an error — ok is false and the caller proceeds with
// plugin-option defaults; a malformed file is returned as an error so the
// build fails loudly rather than silently ignoring a typo'd config.
func LoadProjectConfig(path string) (ProjectConfig, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ProjectConfig{}, false, nil
		}
		return ProjectConfig{}, false, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ProjectConfig{}, false, err
	}
	return cfg, true, nil
}

// ApplyProjectConfig fills any field in opts that the plugin option map left
// at its zero value from cfg, so faktgo.yaml acts as a fallback rather than
// an override. For the log level, "INFO" (Decode's default) counts as unset,
// so a non-empty cfg.LogLevel also replaces an explicitly given "INFO".
func ApplyProjectConfig(opts metadata.FaktOptions, cfg ProjectConfig) metadata.FaktOptions {
	if opts.OutputDirOverride == "" {
		opts.OutputDirOverride = cfg.OutputDir
	}
	if len(opts.FakeAnnotations) == 0 {
		opts.FakeAnnotations = cfg.FakeAnnotations
	}
	if cfg.LogLevel != "" && opts.LogLevel == "INFO" {
		opts.LogLevel = strings.ToUpper(cfg.LogLevel)
	}
	return opts
}
