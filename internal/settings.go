package internal

// Settings is the client configuration read from the YAML config file.
type Settings struct {
	ServerURL    string `yaml:"ServerURL"`
	Username     string `yaml:"Username"`
	DownloadDir  string `yaml:"DownloadDir"`
	EnableSounds bool   `yaml:"EnableSounds"`
}
