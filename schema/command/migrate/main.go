package main

import (
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/spf13/viper"

	"github.com/bitmark-inc/immunity-api/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("immunity")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	db, err := gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		panic(err)
	}

	if err := db.Exec(`CREATE SCHEMA IF NOT EXISTS immunity`).Error; err != nil {
		panic(err)
	}

	if err := db.Exec("SET search_path TO immunity").Error; err != nil {
		panic(err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(
		&schema.Person{},
		&schema.VaccinationShot{},
		&schema.Case{},
		&schema.Phase{},
		&schema.Test{},
	).Error; err != nil {
		panic(err)
	}

	if err := db.Model(schema.VaccinationShot{}).
		AddForeignKey("person_id", "people(id)", "CASCADE", "CASCADE").Error; err != nil {
		panic(err)
	}

	if err := db.Model(schema.Case{}).
		AddForeignKey("person_id", "people(id)", "CASCADE", "CASCADE").Error; err != nil {
		panic(err)
	}

	if err := db.Model(schema.Phase{}).
		AddForeignKey("case_id", "cases(id)", "CASCADE", "CASCADE").Error; err != nil {
		panic(err)
	}

	if err := db.Model(schema.Test{}).
		AddForeignKey("case_id", "cases(id)", "CASCADE", "CASCADE").Error; err != nil {
		panic(err)
	}

	schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database")).IndexAll()
}
