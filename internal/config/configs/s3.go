package configs

// S3 configures object storage for dataset import and export.
type S3 struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	Region  string `env:"REGION" envDefault:"us-east-1"`
	// Endpoint targets an S3-compatible service such as MinIO.
	Endpoint string `env:"ENDPOINT"`
}
