package webauth

import (
	"time"

	"github.com/klwxsrx/go-web-auth/internal/webauth/app/encoding"
	"github.com/klwxsrx/go-web-auth/internal/webauth/app/service"
	"github.com/klwxsrx/go-web-auth/internal/webauth/app/session"
	"github.com/klwxsrx/go-web-auth/internal/webauth/domain"
	"github.com/klwxsrx/go-web-auth/internal/webauth/infra/http"
	"github.com/klwxsrx/go-web-auth/internal/webauth/infra/password"
	infrasession "github.com/klwxsrx/go-web-auth/internal/webauth/infra/session"
	"github.com/klwxsrx/go-web-auth/pkg/auth"
	pkghttp "github.com/klwxsrx/go-web-auth/pkg/http"
	"github.com/klwxsrx/go-web-auth/pkg/lazy"
	"github.com/klwxsrx/go-web-auth/pkg/log"
)

type Config struct {
	Production   bool
	TokenSecret  []byte
	PasswordCost int
	Clock        func() time.Time
}

type DependencyContainer struct {
	AuthService     lazy.Loader[service.Authentication]
	SessionResolver lazy.Loader[service.SessionResolver]

	cookiePolicy http.CookiePolicy
	authProvider lazy.Loader[auth.Provider[service.Identity]]

	homeHandler         lazy.Loader[http.HomeHandler]
	registerPageHandler lazy.Loader[http.RegisterPageHandler]
	registerHandler     lazy.Loader[http.RegisterHandler]
	loginPageHandler    lazy.Loader[http.LoginPageHandler]
	loginHandler        lazy.Loader[http.LoginHandler]
	logoutHandler       lazy.Loader[http.LogoutHandler]
	dashboardHandler    lazy.Loader[http.DashboardHandler]
}

func NewDependencyContainer(
	config Config,
	userRepo lazy.Loader[domain.UserRepository],
	logger lazy.Loader[log.Logger],
) DependencyContainer {
	cookiePolicy := http.CookiePolicy{Production: config.Production}

	tokenCodec := tokenCodecProvider(config)
	passwordHasher := passwordHasherProvider(config)
	sessionResolver := sessionResolverProvider(userRepo, tokenCodec, logger)
	authService := authServiceProvider(userRepo, tokenCodec, passwordHasher, logger)
	view := viewProvider()

	return DependencyContainer{
		AuthService:     authService,
		SessionResolver: sessionResolver,
		cookiePolicy:    cookiePolicy,
		authProvider: lazy.New(func() (auth.Provider[service.Identity], error) {
			return http.NewSessionAuthProvider(sessionResolver.MustLoad()), nil
		}),
		homeHandler: lazy.New(func() (http.HomeHandler, error) {
			return http.NewHomeHandler(view.MustLoad()), nil
		}),
		registerPageHandler: lazy.New(func() (http.RegisterPageHandler, error) {
			return http.NewRegisterPageHandler(view.MustLoad()), nil
		}),
		registerHandler: lazy.New(func() (http.RegisterHandler, error) {
			return http.NewRegisterHandler(authService.MustLoad(), cookiePolicy, view.MustLoad()), nil
		}),
		loginPageHandler: lazy.New(func() (http.LoginPageHandler, error) {
			return http.NewLoginPageHandler(view.MustLoad()), nil
		}),
		loginHandler: lazy.New(func() (http.LoginHandler, error) {
			return http.NewLoginHandler(authService.MustLoad(), cookiePolicy, view.MustLoad()), nil
		}),
		logoutHandler: lazy.New(func() (http.LogoutHandler, error) {
			return http.NewLogoutHandler(cookiePolicy), nil
		}),
		dashboardHandler: lazy.New(func() (http.DashboardHandler, error) {
			return http.NewDashboardHandler(view.MustLoad()), nil
		}),
	}
}

func (c *DependencyContainer) MustRegisterHTTPHandlers(registry pkghttp.HandlerRegistry) {
	registry.Use(pkghttp.WithAuth[service.Identity](
		c.authProvider.MustLoad(),
		c.cookiePolicy.Expired,
		http.SessionTokenProvider,
	))

	registry.Register(c.homeHandler.MustLoad())
	registry.Register(c.registerPageHandler.MustLoad())
	registry.Register(c.registerHandler.MustLoad())
	registry.Register(c.loginPageHandler.MustLoad())
	registry.Register(c.loginHandler.MustLoad())
	registry.Register(c.logoutHandler.MustLoad())
	registry.Register(
		c.dashboardHandler.MustLoad(),
		pkghttp.WithAuthenticationRequirement(http.LoginPath),
	)
}

func tokenCodecProvider(config Config) lazy.Loader[session.TokenCodec] {
	return lazy.New(func() (session.TokenCodec, error) {
		var opts []infrasession.JWTCodecOption
		if config.Clock != nil {
			opts = append(opts, infrasession.WithClock(config.Clock))
		}

		return infrasession.NewJWTCodec(config.TokenSecret, opts...), nil
	})
}

func passwordHasherProvider(config Config) lazy.Loader[encoding.PasswordHasher] {
	return lazy.New(func() (encoding.PasswordHasher, error) {
		return password.NewBcryptHasher(config.PasswordCost), nil
	})
}

func sessionResolverProvider(
	userRepo lazy.Loader[domain.UserRepository],
	tokenCodec lazy.Loader[session.TokenCodec],
	logger lazy.Loader[log.Logger],
) lazy.Loader[service.SessionResolver] {
	return lazy.New(func() (service.SessionResolver, error) {
		return service.NewSessionResolver(userRepo.MustLoad(), tokenCodec.MustLoad(), logger.MustLoad()), nil
	})
}

func authServiceProvider(
	userRepo lazy.Loader[domain.UserRepository],
	tokenCodec lazy.Loader[session.TokenCodec],
	passwordHasher lazy.Loader[encoding.PasswordHasher],
	logger lazy.Loader[log.Logger],
) lazy.Loader[service.Authentication] {
	return lazy.New(func() (service.Authentication, error) {
		return service.NewAuthentication(
			userRepo.MustLoad(),
			tokenCodec.MustLoad(),
			passwordHasher.MustLoad(),
			logger.MustLoad(),
		), nil
	})
}

func viewProvider() lazy.Loader[*http.View] {
	return lazy.New(http.NewView)
}
