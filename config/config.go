package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng:
// kết nối cơ sở dữ liệu, địa chỉ server và các tham số của scheduler.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`              // Cổng HTTP server
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`        // URL kết nối cơ sở dữ liệu
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                // Tên cơ sở dữ liệu
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`            // Các origins được phép
	// Scheduler Configuration
	SchedulerTickMs int `env:"SCHEDULER_TICK_MS" envDefault:"300000"` // Chu kỳ tick của scheduler phân phối nhiệm vụ (ms, mặc định 5 phút)
	OverdueSweepMs  int `env:"OVERDUE_SWEEP_MS" envDefault:"600000"`  // Chu kỳ quét nhiệm vụ quá hạn (ms, mặc định 10 phút)
	// TLS/HTTPS Configuration
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn file certificate
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn file private key
}

// getEnvPath trả về đường dẫn đến file env theo môi trường (GO_ENV).
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	environment := os.Getenv("GO_ENV")
	if environment == "" {
		environment = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	// Tìm thư mục config/env bằng cách đi lên từ thư mục hiện tại
	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", environment))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc dữ liệu cấu hình từ file env và environment variables.
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			// Không fatal — cho phép chạy thuần bằng environment variables
			fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
