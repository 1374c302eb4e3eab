package main

import (
	"fmt"
	"os"
)

// @title friendgraph API
// @version 1.0
// @description 好友关系、帖子与点赞服务
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
