package config

import "os"

type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	ServerPort     string
	AdminUsername  string
	AdminPassword  string
	AdminFullName  string
	// AnswerDeadline of "0" disables the server-side deadline and keeps
	// the client countdown as the only limit on trivia answers.
	AnswerDeadline string
}

func Load() *Config {
	return &Config{
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "tevent"),
		JWTSecret:      getEnv("JWT_SECRET", "super-secret-key-change-me"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		AdminUsername:  getEnv("ADMIN_USERNAME", ""),
		AdminPassword:  getEnv("ADMIN_PASSWORD", ""),
		AdminFullName:  getEnv("ADMIN_FULL_NAME", "Administrator"),
		AnswerDeadline: getEnv("ANSWER_DEADLINE_SECONDS", "0"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
