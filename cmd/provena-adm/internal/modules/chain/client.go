package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nspcc-dev/neo-go/cli/input"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const rpcTimeout = 15 * time.Second

func getN3Client(v *viper.Viper) (*rpcclient.Client, error) {
	endpoint := v.GetString(endpointFlag)
	if endpoint == "" {
		return nil, errors.New("missing RPC endpoint")
	}

	c, err := rpcclient.New(context.Background(), endpoint, rpcclient.Options{
		DialTimeout:    rpcTimeout,
		RequestTimeout: rpcTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = c.Init()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	return c, nil
}

// newInvoker returns read-only invoker along with the closer of underlying
// connection.
func newInvoker(v *viper.Viper) (*invoker.Invoker, func(), error) {
	c, err := getN3Client(v)
	if err != nil {
		return nil, nil, err
	}

	return invoker.New(c, nil), c.Close, nil
}

// getAccount opens the wallet and decrypts its default account.
func getAccount(v *viper.Viper) (*wallet.Account, error) {
	walletPath := v.GetString(walletFlag)
	if walletPath == "" {
		return nil, errors.New("missing wallet path")
	}

	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}

	acc := w.GetAccount(w.GetChangeAddress())
	if acc == nil {
		return nil, fmt.Errorf("no default account in wallet %s", walletPath)
	}

	var password string
	if v.IsSet(walletPasswordFlag) {
		password = v.GetString(walletPasswordFlag)
	} else {
		password, err = input.ReadPassword("Password for " + acc.Address + " > ")
		if err != nil {
			return nil, fmt.Errorf("read password: %w", err)
		}
	}

	err = acc.Decrypt(password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account %s: %w", acc.Address, err)
	}

	return acc, nil
}

func newLogger(v *viper.Viper) (*zap.Logger, error) {
	lvl := zapcore.InfoLevel
	if v.GetBool(VerboseFlag) {
		lvl = zapcore.DebugLevel
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(lvl)
	c.Encoding = "console"
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	c.Sampling = nil

	l, err := c.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return l, nil
}

// contractHash returns address of the named contract from the config.
func contractHash(v *viper.Viper, name string) (util.Uint160, error) {
	key := "contracts." + name

	s := v.GetString(key)
	if s == "" {
		return util.Uint160{}, fmt.Errorf("address of the %s contract is not configured (%s)", name, key)
	}

	h, err := parseHash(s)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("%s: %w", key, err)
	}

	return h, nil
}

// parseHash accepts Neo address or little-endian HEX string.
func parseHash(s string) (util.Uint160, error) {
	if h, err := address.StringToUint160(s); err == nil {
		return h, nil
	}

	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid address or script hash '%s'", s)
	}

	return h, nil
}
