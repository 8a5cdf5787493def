package main

import (
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/saynoretake/core"
	"github.com/trezcool/saynoretake/core/user"
	emailsvc "github.com/trezcool/saynoretake/services/email"
	logsvc "github.com/trezcool/saynoretake/services/logger"
	inmemdb "github.com/trezcool/saynoretake/storage/database/inmem"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "CONSOLE : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")

	// mails are sent synchronously: the process may exit right after a grade is added
	var observers []user.Observer
	if addr, ok := conf.AdviserEmail(); ok {
		var mailSvc core.EmailService
		if conf.Debug {
			mailSvc = emailsvc.NewConsoleService(conf, log.New(os.Stderr, "MAIL : ", log.LstdFlags))
		} else {
			mailSvc = emailsvc.NewSendgridService(conf, logger)
		}
		observers = append(observers, user.NewMailNotifier(addr, emailsvc.Synchronous(mailSvc)))
	}

	dir := inmemdb.NewDirectory()
	inmemdb.Seed(dir, conf, logger, observers...)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		usrSvc:     user.NewService(dir, logger),
		validate:   validate,
		translator: translator,
		in:         os.Stdin,
		out:        os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
