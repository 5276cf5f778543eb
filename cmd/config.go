package cmd

import (
	"github.com/spf13/viper"
)

const (
	defaultDNSTimeoutSeconds   = 10
	defaultHTTPTimeoutSeconds  = 10
	defaultWhoisTimeoutSeconds = 10
	defaultConcurrency         = 4
	defaultRateLimit           = 5
)

// CLIConfig captures runtime configuration shared across commands.
type CLIConfig struct {
	Verbose bool
	Check   CheckRuntimeConfig
	Trust   TrustConfig
}

// CheckRuntimeConfig consolidates flag-driven settings for the analyze command.
type CheckRuntimeConfig struct {
	Concurrency int
	RateLimit   int
	TimeoutSecs int
	DNS         DNSConfig
	Whois       WhoisConfig
}

// DNSConfig groups DNS-specific runtime options.
type DNSConfig struct {
	Nameservers []string
	Timeout     int
}

// WhoisConfig groups WHOIS-specific runtime options.
type WhoisConfig struct {
	Server  string
	Timeout int
}

// TrustConfig exposes the scoring policy knobs that may be overridden from
// the config file. Score deltas themselves are fixed policy.
type TrustConfig struct {
	NSProviders []string
	IPProviders []string
}

// loadConfig resolves the runtime configuration from viper, falling back to
// built-in defaults for anything the config file does not set.
func loadConfig() CLIConfig {
	cfg := CLIConfig{
		Verbose: viper.GetBool("verbose"),
		Check: CheckRuntimeConfig{
			Concurrency: defaultConcurrency,
			RateLimit:   defaultRateLimit,
			TimeoutSecs: defaultHTTPTimeoutSeconds,
			DNS: DNSConfig{
				Nameservers: []string{},
				Timeout:     defaultDNSTimeoutSeconds,
			},
			Whois: WhoisConfig{
				Timeout: defaultWhoisTimeoutSeconds,
			},
		},
	}

	if viper.IsSet("check.concurrency") {
		cfg.Check.Concurrency = viper.GetInt("check.concurrency")
	}
	if viper.IsSet("check.rate_limit") {
		cfg.Check.RateLimit = viper.GetInt("check.rate_limit")
	}
	if viper.IsSet("check.timeout_secs") {
		cfg.Check.TimeoutSecs = viper.GetInt("check.timeout_secs")
	}
	if viper.IsSet("check.dns.nameservers") {
		cfg.Check.DNS.Nameservers = viper.GetStringSlice("check.dns.nameservers")
	}
	if viper.IsSet("check.dns.timeout") {
		cfg.Check.DNS.Timeout = viper.GetInt("check.dns.timeout")
	}
	if viper.IsSet("check.whois.server") {
		cfg.Check.Whois.Server = viper.GetString("check.whois.server")
	}
	if viper.IsSet("check.whois.timeout") {
		cfg.Check.Whois.Timeout = viper.GetInt("check.whois.timeout")
	}
	if viper.IsSet("trust.ns_providers") {
		cfg.Trust.NSProviders = viper.GetStringSlice("trust.ns_providers")
	}
	if viper.IsSet("trust.ip_providers") {
		cfg.Trust.IPProviders = viper.GetStringSlice("trust.ip_providers")
	}

	return cfg
}
