package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# blogpub configuration
site:
  title: "My Blog"
  base_url: "https://example.com"

content:
  dir: source/_posts
  excerpt_marker: "<!-- more -->"

deploy:
  # Remote repository hosting the rendered site.
  remote_url: "git@github.com:example/example.github.io.git"
  branch: publishing
  staging_dir: .deploy_git
  clone_depth: 1
  # Set true to ignore failures when clearing a stale staging directory.
  ignore_clean_failure: false

generator:
  build_cmd: ["hexo", "generate"]
  deploy_cmd: ["hexo", "deploy"]

history:
  path: .blogpub/history.db

daemon:
  interval: 1h
  listen: ":9090"
  # nats_url: "nats://localhost:4222"
  # nats_subject: blogpub.publish
`

// Init creates a new configuration file with example content
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
