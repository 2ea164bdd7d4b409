// Command token emite tokens de acesso para os endpoints internos de coleta
// (agendador externo, operadores e o dashboard).
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hjyoomkt/growth-dashboard-sub002/internal/config"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/domain"
	"github.com/hjyoomkt/growth-dashboard-sub002/internal/usecases/authenticating"
	"github.com/sirupsen/logrus"
)

func main() {
	role := flag.String("role", domain.RoleService, "role do token (service, admin, viewer)")
	subject := flag.String("subject", "scheduler", "identificação de quem usa o token")
	ttl := flag.Duration("ttl", 0, "validade do token; 0 emite um token sem expiração")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	token, err := authenticating.NewService(cfg.Auth).IssueToken(*role, *subject, *ttl)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao emitir token")
	}

	expires := "nunca"
	if *ttl > 0 {
		expires = time.Now().Add(*ttl).Format(time.RFC3339)
	}
	fmt.Fprintf(os.Stderr, "role=%s subject=%s expira=%s\n", *role, *subject, expires)
	fmt.Println(token)
}
