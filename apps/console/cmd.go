package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/trezcool/saynoretake/core"
	"github.com/trezcool/saynoretake/core/strategy"
	"github.com/trezcool/saynoretake/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	usrSvc     *user.Service
	validate   *validator.Validate
	translator ut.Translator
	in         io.Reader
	out        io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  report -student NAME -adviser ADVISER - print the student's grade report")
	fmt.Fprintln(cli.out, "  grade -student NAME -adviser ADVISER -subject SUBJECT -category CATEGORY -score SCORE - add a grade")
	fmt.Fprintf(cli.out, "  assess -student NAME -adviser ADVISER -strategy %s - run an assessment\n", strings.Join(strategy.Names(), "|"))
	fmt.Fprintln(cli.out, "  session -student NAME -adviser ADVISER - interactive student session")
	fmt.Fprintln(cli.out, "  reports -adviser NAME - print the adviser's report of all students")
	fmt.Fprintln(cli.out, "Passwords are prompted next.")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	cmd := flag.NewFlagSet(args[1], flag.ContinueOnError)
	cmd.SetOutput(cli.out)
	studentName := cmd.String("student", "", "The student's name.")
	adviserName := cmd.String("adviser", "", "The adviser's name.")

	switch args[1] {
	case "report":
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		usr, err := cli.studentLogin(cmd, *studentName, *adviserName)
		if err != nil {
			return err
		}
		return cli.report(usr)

	case "grade":
		subjectName := cmd.String("subject", "", "The subject's name.")
		category := cmd.String("category", "", "The grading category.")
		score := cmd.Float64("score", 0, "The points to add.")
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *subjectName == "" || *category == "" {
			cmd.Usage()
			return errHelp
		}
		usr, err := cli.studentLogin(cmd, *studentName, *adviserName)
		if err != nil {
			return err
		}
		if err = cli.addGrade(usr, user.NewGrade{Subject: *subjectName, Category: *category, Score: *score}); err != nil {
			return err
		}
		return cli.report(usr)

	case "assess":
		strat := cmd.String("strategy", "", "One of "+strings.Join(strategy.Names(), ", ")+".")
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *strat == "" {
			cmd.Usage()
			return errHelp
		}
		usr, err := cli.studentLogin(cmd, *studentName, *adviserName)
		if err != nil {
			return err
		}
		return cli.assess(usr, *strat)

	case "session":
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		usr, err := cli.studentLogin(cmd, *studentName, *adviserName)
		if err != nil {
			return err
		}
		return cli.session(usr)

	case "reports":
		if err := cmd.Parse(args[2:]); err != nil {
			return errHelp
		}
		if *adviserName == "" {
			cmd.Usage()
			return errHelp
		}
		if _, err := cli.login(user.RoleAdviser, *adviserName, ""); err != nil {
			return err
		}
		report, err := cli.usrSvc.AdviserReport()
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, report)
		return nil

	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) studentLogin(cmd *flag.FlagSet, name, adviserName string) (user.User, error) {
	if name == "" {
		cmd.Usage()
		return user.User{}, errHelp
	}
	return cli.login(user.RoleStudent, name, adviserName)
}

// login prompts for the password of `name` and logs them in as `role`.
func (cli *commandLine) login(role user.Role, name, adviserName string) (user.User, error) {
	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return user.User{}, err
	}
	if len(pwd) == 0 {
		return user.User{}, errHelp
	}

	req := user.LoginRequest{Role: role.String(), Name: name, Password: string(pwd), AdviserName: adviserName}
	if err = req.Validate(cli.validate); err != nil {
		return user.User{}, cli.validationError(err)
	}
	return cli.usrSvc.Login(req)
}

func (cli *commandLine) report(usr user.User) error {
	report, err := cli.usrSvc.StudentReport(usr.Name())
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, report)
	return nil
}

func (cli *commandLine) assess(usr user.User, strat string) error {
	result, err := cli.usrSvc.Assess(usr.Name(), strat)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, result)
	return nil
}

func (cli *commandLine) addGrade(usr user.User, ng user.NewGrade) error {
	if err := ng.Validate(cli.validate); err != nil {
		return cli.validationError(err)
	}
	if err := cli.usrSvc.AddGrade(usr.Name(), ng); err != nil {
		return err
	}

	subs, err := cli.usrSvc.Subjects(usr.Name())
	if err != nil {
		return err
	}
	for _, sub := range subs {
		if !strings.EqualFold(sub.Name, ng.Subject) {
			continue
		}
		for _, cat := range sub.Categories {
			if cat.Name == ng.Category {
				fmt.Fprintf(cli.out, "Score updated for %s: %s/%s.\n",
					cat.Name, core.FormatScore(sub.Grades[cat.Name]), core.FormatScore(cat.Max))
			}
		}
	}
	return nil
}

// session reads commands from cli.in until "quit" or EOF.
// Rejected commands are printed and the session goes on.
func (cli *commandLine) session(usr user.User) error {
	scanner := bufio.NewScanner(cli.in)
	prompt := func(label string) (string, bool) {
		fmt.Fprint(cli.out, label)
		if !scanner.Scan() {
			return "", false
		}
		return strings.TrimSpace(scanner.Text()), true
	}

	fmt.Fprintf(cli.out, "Welcome %s! Commands: report, subjects, grade, assess, quit\n", usr.Name())
	for {
		line, ok := prompt("> ")
		if !ok {
			return scanner.Err()
		}

		var err error
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "quit", "exit":
			return nil
		case "report":
			err = cli.report(usr)
		case "subjects":
			err = cli.printSubjects(usr)
		case "grade":
			var ng user.NewGrade
			var scoreStr string
			if ng.Subject, ok = prompt("Subject: "); !ok {
				return scanner.Err()
			}
			if ng.Category, ok = prompt("Category: "); !ok {
				return scanner.Err()
			}
			if scoreStr, ok = prompt("Score: "); !ok {
				return scanner.Err()
			}
			if ng.Score, err = strconv.ParseFloat(scoreStr, 64); err != nil {
				err = errors.Errorf("invalid score %q", scoreStr)
				break
			}
			err = cli.addGrade(usr, ng)
		case "assess":
			if len(fields) < 2 {
				err = errors.Errorf("usage: assess %s", strings.Join(strategy.Names(), "|"))
				break
			}
			err = cli.assess(usr, fields[1])
		default:
			fmt.Fprintf(cli.out, "unknown command %q\n", fields[0])
		}
		if err != nil {
			fmt.Fprintf(cli.out, "error: %v\n", err)
		}
	}
}

func (cli *commandLine) printSubjects(usr user.User) error {
	subs, err := cli.usrSvc.Subjects(usr.Name())
	if err != nil {
		return err
	}
	for _, sub := range subs {
		fmt.Fprintf(cli.out, "- %s (total %s)\n", sub.Name, core.FormatScore(sub.TotalScore))
		for _, cat := range sub.Categories {
			fmt.Fprintf(cli.out, "    %s: %s/%s\n", cat.Name, core.FormatScore(sub.Grades[cat.Name]), core.FormatScore(cat.Max))
		}
	}
	return nil
}

// validationError flattens validation errors into one core.ValidationError, fields sorted by name.
func (cli *commandLine) validationError(err error) error {
	vErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := core.TranslateErrors(vErrs, cli.translator)
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	flds := make([]core.FieldError, 0, len(names))
	msgs := make([]string, 0, len(names))
	for _, name := range names {
		flds = append(flds, core.FieldError{Field: name, Error: fields[name]})
		msgs = append(msgs, name+": "+fields[name])
	}
	return core.NewValidationError(errors.New(strings.Join(msgs, "; ")), flds...)
}
