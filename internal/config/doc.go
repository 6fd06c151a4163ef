// Package config manages user-level settings stored at
// ~/.create-empirica-app/config.yaml, overlaid by CREATE_EMPIRICA_APP_* env
// vars and a .env file in the working directory.
package config
