// Package trace wires the capture transport to the Azure OpenAI client and
// turns captured exchanges into human-readable reports.
// It provides a factory producing a plain and an instrumented client pair
// from shared configuration, and a reporting service rendering the most
// recent exchange as text, JSON, or YAML.
package trace
