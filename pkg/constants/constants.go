// Package constants provides shared constants for the llc-sweeper application.
package constants

// Sweep grid defaults. These back the optional Specification fields and match
// the design-article recommended exploration window.
const (
	// DefaultLnMin is the lower bound of the inductance-ratio sweep
	DefaultLnMin = 4.0

	// DefaultLnMax is the upper bound of the inductance-ratio sweep
	DefaultLnMax = 10.0

	// DefaultQeMin is the lower bound of the loaded-quality-factor sweep
	DefaultQeMin = 0.33

	// DefaultQeMax is the upper bound of the loaded-quality-factor sweep
	DefaultQeMax = 0.50

	// LnStep is the inductance-ratio grid step
	LnStep = 1.0

	// QePoints is the number of evenly spaced quality-factor grid points
	QePoints = 10

	// DefaultSpanRatioAllowed is the frequency span ratio tolerated without penalty
	DefaultSpanRatioAllowed = 1.6

	// DefaultLightLoadRatio is the light-load corner power as a fraction of full load
	DefaultLightLoadRatio = 0.20
)

// Component grid defaults
const (
	// DefaultInductorStep is the manufacturable inductor grid (1 uH)
	DefaultInductorStep = 1.0e-6

	// DefaultCapacitorStep is the manufacturable capacitor grid (1 nF)
	DefaultCapacitorStep = 1.0e-9
)

// Solver constants
const (
	// DefaultGainTolerance is the acceptable gain error for a solved operating point
	DefaultGainTolerance = 0.02

	// ResonanceGainTolerance treats targets this close to unity as at-resonance
	ResonanceGainTolerance = 0.01

	// ScanSamples is the sample count of the fallback linear scan
	ScanSamples = 300
)

// Scoring constants
const (
	// CurrentWeight scales the resonant-inductor RMS current term
	CurrentWeight = 1.0

	// VoltageWeight scales the resonant-capacitor peak voltage term
	VoltageWeight = 1.0

	// ResonanceWeight scales the deviation-from-resonance term
	ResonanceWeight = 0.2

	// WarningPenalty is the flat score penalty per warning
	WarningPenalty = 10.0

	// SpanWeight scales the excess frequency-span penalty
	SpanWeight = 0.6

	// LimitPenalty is the flat penalty per absolute frequency-limit breach
	LimitPenalty = 5.0

	// CurrentReference normalizes the RMS current term (amps); fixed rather
	// than derived per-sweep so scores stay comparable across runs
	CurrentReference = 3.0

	// SpanSentinel is the span ratio assigned when a corner cannot be solved
	SpanSentinel = 5.0

	// SpanWarningThreshold flags designs whose frequency span exceeds this ratio
	SpanWarningThreshold = 2.0
)

// Validation constants
const (
	// FNPlausibleMin is the lower edge of the FHA-valid normalized frequency band
	FNPlausibleMin = 0.5

	// FNPlausibleMax is the upper edge of the FHA-valid normalized frequency band
	FNPlausibleMax = 2.5

	// DriftTolerance is the allowed relative drift of realized Ln/Qe past the
	// requested sweep bounds before a warning is raised
	DriftTolerance = 0.01
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatXLSX is the Excel workbook output format
	OutputFormatXLSX = "xlsx"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultXlsxFile is the default Excel output file name
	DefaultXlsxFile = "sweep.xlsx"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the sweep API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML specs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024
)

// Selection defaults
const (
	// DefaultTopN is the number of diverse top candidates reported
	DefaultTopN = 3

	// DiversityLnThreshold is the design-Ln distance that makes candidates distinct
	DiversityLnThreshold = 0.9

	// DiversityQeThreshold is the design-Qe distance that makes candidates distinct
	DiversityQeThreshold = 0.03
)
