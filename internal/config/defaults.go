package config

// Default model locations.
const (
	ModelsDir = "models"

	NSFWModelURL    = "https://huggingface.co/AdamCodd/vit-base-nsfw-detector/resolve/main/onnx/model.onnx"
	TaggerModelURL  = "https://huggingface.co/SmilingWolf/wd-v1-4-moat-tagger-v2/resolve/main/model.onnx"
	NSFWModelPath   = ModelsDir + "/nsfw.onnx"
	TaggerModelPath = ModelsDir + "/tagger.onnx"

	NSFWModelEnvKey   = "NSFW_MODEL_PATH"
	TaggerModelEnvKey = "TAGGER_MODEL_PATH"

	DefaultEnvFile = ".env"
	DefaultRegion  = "us-east-1"
)

// Default returns the built-in bootstrap layout: the pipeline's working
// directories, ffmpeg and xorriso as probed tools, the two ONNX models and
// curl with a wget fallback.
func Default() *Config {
	return &Config{
		Directories: []string{ModelsDir, "input", "output", "data"},
		Dependencies: []Dependency{
			{
				Name:        "ffmpeg",
				Description: "Frame extraction for image and video classification",
				InstallURL:  "https://ffmpeg.org/download.html",
				Hints: map[string]string{
					"darwin":       "brew install ffmpeg",
					"linux/debian": "sudo apt-get install -y ffmpeg",
					"linux/fedora": "sudo dnf install -y ffmpeg",
					"linux/arch":   "sudo pacman -S ffmpeg",
					"linux/alpine": "sudo apk add ffmpeg",
					"windows":      "winget install ffmpeg",
				},
			},
			{
				Name:        "xorriso",
				Description: "ISO image creation for archive export",
				InstallURL:  "https://www.gnu.org/software/xorriso/",
				Hints: map[string]string{
					"darwin":       "brew install xorriso",
					"linux/debian": "sudo apt-get install -y xorriso",
					"linux/fedora": "sudo dnf install -y xorriso",
					"linux/arch":   "sudo pacman -S libisoburn",
					"linux/alpine": "sudo apk add xorriso",
				},
			},
		},
		Artifacts: []Artifact{
			{Name: "nsfw", URL: NSFWModelURL, Destination: NSFWModelPath, EnvKey: NSFWModelEnvKey},
			{Name: "tagger", URL: TaggerModelURL, Destination: TaggerModelPath, EnvKey: TaggerModelEnvKey},
		},
		Transports: []string{TransportCurl, TransportWget},
		S3Mirror:   S3Mirror{Region: DefaultRegion},
		EnvFile:    DefaultEnvFile,
	}
}
