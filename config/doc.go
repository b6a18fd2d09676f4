// Package config loads lloom settings from files, .env files and the
// environment, watches a settings file for changes and describes the file
// format as JSON Schema.
//
// A settings file has two sections:
//
//	conversation:
//	  model: gpt-3.5-turbo-0613
//	  temperature: 0.7
//	  max_tokens: 800
//	  system_message: You are a terse assistant.
//	transport:
//	  provider: azure
//	  base_url: https://example.openai.azure.com/
//	  deployment: chat
//	  timeout: 90s
//
// The format is chosen by extension: .yaml/.yml, .toml or .json.
// Environment variables override the file; see ApplyEnv.
package config
