package option

type Global struct {
}

type Server struct {
	Global
	Debug      bool
	Trace      bool
	ConfigFile string
	Listen     string
	Port       string
}
