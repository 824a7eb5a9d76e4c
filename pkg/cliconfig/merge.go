package cliconfig

// MergeConfig merges source config into target, updating sources tracking.
// Only non-zero values from source are applied.
func MergeConfig(target, source *CLIConfig, sourceType string) {
	if source == nil {
		return
	}
	if target.Sources == nil {
		target.Sources = make(map[string]string)
	}

	mergeString(target, "scheme", &target.Scheme, source.Scheme, sourceType)
	mergeString(target, "host", &target.Host, source.Host, sourceType)
	mergeString(target, "username", &target.Username, source.Username, sourceType)
	mergeString(target, "password", &target.Password, source.Password, sourceType)
	mergeString(target, "token", &target.Token, source.Token, sourceType)
	mergeString(target, "owner", &target.Owner, source.Owner, sourceType)
	mergeString(target, "app", &target.App, source.App, sourceType)
	mergeString(target, "output", &target.Output, source.Output, sourceType)
	mergeString(target, "logLevel", &target.LogLevel, source.LogLevel, sourceType)
	mergeString(target, "logFormat", &target.LogFormat, source.LogFormat, sourceType)

	if source.Port != 0 {
		target.Port = source.Port
		target.Sources["port"] = sourceType
	}
	if source.Timeout != 0 {
		target.Timeout = source.Timeout
		target.Sources["timeout"] = sourceType
	}

	if boolIsSet(source, "basicAuth") {
		target.BasicAuth = source.BasicAuth
		target.Sources["basicAuth"] = sourceType
	}
	if boolIsSet(source, "insecure") {
		target.Insecure = source.Insecure
		target.Sources["insecure"] = sourceType
	}
	if boolIsSet(source, "permissive") {
		target.Permissive = source.Permissive
		target.Sources["permissive"] = sourceType
	}
}

func mergeString(target *CLIConfig, key string, dst *string, src, sourceType string) {
	if src == "" {
		return
	}
	*dst = src
	target.Sources[key] = sourceType
}

// boolIsSet reports whether a boolean field identified by its YAML key was
// explicitly set in the source config. Without SetFields (a config built in
// code) only true counts as set.
func boolIsSet(cfg *CLIConfig, yamlKey string) bool {
	if cfg.SetFields != nil {
		return cfg.SetFields[yamlKey]
	}
	switch yamlKey {
	case "basicAuth":
		return cfg.BasicAuth
	case "insecure":
		return cfg.Insecure
	case "permissive":
		return cfg.Permissive
	}
	return false
}
