// Package openai generates candidate phrases through an OpenAI-compatible
// chat API via langchaingo. Responses are requested in JSON mode, cleaned
// of markdown fences, run through a small JSON repairer and parsed with up
// to three attempts before giving up.
package openai
