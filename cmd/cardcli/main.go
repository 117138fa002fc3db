package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"github.com/ivanpodgorny/cardcheck/internal/binrange"
	"github.com/ivanpodgorny/cardcheck/internal/brand"
	"github.com/ivanpodgorny/cardcheck/internal/client"
	"github.com/ivanpodgorny/cardcheck/internal/entity"
	"github.com/ivanpodgorny/cardcheck/internal/field"
	"github.com/ivanpodgorny/cardcheck/internal/security"
	"github.com/ivanpodgorny/cardcheck/internal/validator"
	logger "github.com/sirupsen/logrus"
	"golang.org/x/term"
	"os"
	"time"
)

// errFailed означает, что хотя бы одно из проверенных значений невалидно.
var errFailed = errors.New("validation failed")

const usage = `Использование:
  cardcli validate [-number N] [-cvc C] [-expiry E] [-wait 5s] [-m адрес] [-b таблица] [-no-color]
  cardcli brand [-b таблица] [-no-color] N...
  cardcli luhn [-no-color] N...
  cardcli keygen [-secret S]
`

func main() {
	logger.SetLevel(logger.WarnLevel)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "validate":
		err = runValidate(os.Args[2:])
	case "brand":
		err = runBrand(os.Args[2:])
	case "luhn":
		err = runLuhn(os.Args[2:])
	case "keygen":
		err = runKeygen(os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if errors.Is(err, errFailed) {
		os.Exit(1)
	}

	if err != nil {
		logger.Fatal(err)
	}
}

func runValidate(args []string) error {
	var (
		fs          = flag.NewFlagSet("validate", flag.ExitOnError)
		number      = fs.String("number", "", "номер карты; если не задан, запрашивается без отображения ввода")
		cvc         = fs.String("cvc", "", "код CVC")
		expiry      = fs.String("expiry", "", "срок действия в формате MM/YY")
		wait        = fs.Duration("wait", 5*time.Second, "максимальное время ожидания диапазонов BIN")
		metadata    = fs.String("m", os.Getenv("METADATA_SERVICE_ADDRESS"), "адрес сервиса метаданных карт")
		metadataKey = fs.String("metadata-key", os.Getenv("METADATA_KEY"), "ключ доступа к сервису метаданных карт")
		tablePath   = fs.String("b", os.Getenv("BRAND_TABLE_PATH"), "путь к YAML-файлу с таблицей платежных систем")
		noColor     = fs.Bool("no-color", false, "отключить цветной вывод")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	detector, err := newDetector(*tablePath)
	if err != nil {
		return err
	}

	if *number == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		if *number, err = readHidden("Номер карты: "); err != nil {
			return err
		}
	}

	var fetcher binrange.Fetcher
	if *metadata != "" {
		fetcher = client.NewMetadata(*metadata, *metadataKey, *wait)
	}

	var (
		pan  = field.NewPAN(detector, binrange.NewService(fetcher, *wait))
		form = field.NewForm(pan, field.NewExpiry(nil))
		res  = form.Validate(*number, *cvc, *expiry)
	)

	if res.Pending {
		done := make(chan struct{}, 1)
		pan.Observe(*number, func(entity.ValidationState) {
			done <- struct{}{}
		})
		select {
		case <-done:
		case <-time.After(*wait):
		}

		res = form.Validate(*number, *cvc, *expiry)
	}

	newPrinter(os.Stdout, *noColor).validation(res)

	if !res.Number.Valid || !res.CVC.Valid || !res.Expiry.Valid {
		return errFailed
	}

	return nil
}

func runBrand(args []string) error {
	var (
		fs        = flag.NewFlagSet("brand", flag.ExitOnError)
		tablePath = fs.String("b", os.Getenv("BRAND_TABLE_PATH"), "путь к YAML-файлу с таблицей платежных систем")
		noColor   = fs.Bool("no-color", false, "отключить цветной вывод")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	detector, err := newDetector(*tablePath)
	if err != nil {
		return err
	}

	var (
		p      = newPrinter(os.Stdout, *noColor)
		failed = false
	)
	for _, n := range fs.Args() {
		b := detector.Detect(field.Digits(n))
		p.result(n, b != entity.BrandUnknown, string(b))
		failed = failed || b == entity.BrandUnknown
	}

	if failed {
		return errFailed
	}

	return nil
}

func runLuhn(args []string) error {
	var (
		fs      = flag.NewFlagSet("luhn", flag.ExitOnError)
		noColor = fs.Bool("no-color", false, "отключить цветной вывод")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	engine, err := validator.NewEngine()
	if err != nil {
		return err
	}

	var (
		v      = validator.New(engine)
		p      = newPrinter(os.Stdout, *noColor)
		failed = false
	)
	for _, n := range fs.Args() {
		if err := v.Var(context.Background(), field.Digits(n), "luhn"); err != nil {
			p.result(n, false, "fail")
			failed = true

			continue
		}

		p.result(n, true, "ok")
	}

	if failed {
		return errFailed
	}

	return nil
}

func runKeygen(args []string) error {
	var (
		fs     = flag.NewFlagSet("keygen", flag.ExitOnError)
		secret = fs.String("secret", os.Getenv("HMAC_KEY"), "секрет для подписи ключей, по умолчанию HMAC_KEY")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *secret == "" {
		return errors.New("secret is required")
	}

	key, err := security.NewAuthenticator(security.NewHMACSigner(*secret)).GrantKey()
	if err != nil {
		return err
	}

	fmt.Println(key)

	return nil
}

func newDetector(tablePath string) (*brand.Detector, error) {
	if tablePath == "" {
		return brand.NewDetector(brand.DefaultTable()), nil
	}

	table, err := brand.LoadTable(tablePath)
	if err != nil {
		return nil, err
	}

	return brand.NewDetector(table), nil
}

func readHidden(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)

	return string(b), err
}
