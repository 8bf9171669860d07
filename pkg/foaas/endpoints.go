package foaas

// Endpoints is the authoritative list of supported routes. Every route is a
// row here; Client.Invoke is the only code that talks to the network.
var Endpoints = []Endpoint{
	{Name: "absolutely", Path: "/absolutely/{company}/{from}"},
	{Name: "anyway", Path: "/anyway/{company}/{from}"},
	{Name: "asshole", Path: "/asshole/{from}"},
	{Name: "awesome", Path: "/awesome/{from}"},
	{Name: "back", Path: "/back/{name}/{from}"},
	{Name: "bag", Path: "/bag/{from}"},
	{Name: "ballmer", Path: "/ballmer/{name}/{company}/{from}"},
	{Name: "bday", Path: "/bday/{name}/{from}"},
	{Name: "because", Path: "/because/{from}"},
	{Name: "blackadder", Path: "/blackadder/{name}/{from}"},
	{Name: "bm", Path: "/bm/{name}/{from}"},
	{Name: "bucket", Path: "/bucket/{from}"},
	{Name: "bus", Path: "/bus/{name}/{from}"},
	{Name: "bye", Path: "/bye/{from}"},
	{Name: "caniuse", Path: "/caniuse/{tool}/{from}"},
	{Name: "chainsaw", Path: "/chainsaw/{name}/{from}"},
	{Name: "cocksplat", Path: "/cocksplat/{name}/{from}"},
	{Name: "cool", Path: "/cool/{from}"},
	{Name: "cup", Path: "/cup/{from}"},
	{Name: "dalton", Path: "/dalton/{name}/{from}"},
	{Name: "dense", Path: "/dense/{from}"},
	{Name: "deraadt", Path: "/deraadt/{name}/{from}"},
	{Name: "diabetes", Path: "/diabetes/{from}"},
	{Name: "donut", Path: "/donut/{name}/{from}"},
	{Name: "dosomething", Path: "/dosomething/{do}/{something}/{from}"},
	{Name: "dumbledore", Path: "/dumbledore/{from}"},
	{Name: "equity", Path: "/equity/{name}/{from}"},
	{Name: "even", Path: "/even/{from}"},
	{Name: "everyone", Path: "/everyone/{from}"},
	{Name: "everything", Path: "/everything/{from}"},
	{Name: "family", Path: "/family/{from}"},
	{Name: "fascinating", Path: "/fascinating/{from}"},
	{Name: "fewer", Path: "/fewer/{name}/{from}"},
	{Name: "field", Path: "/field/{name}/{from}/{reference}"},
	{Name: "flying", Path: "/flying/{from}"},
	{Name: "ftfy", Path: "/ftfy/{from}"},
	{Name: "fts", Path: "/fts/{name}/{from}"},
	{Name: "fyyff", Path: "/fyyff/{from}"},
	{Name: "gfy", Path: "/gfy/{name}/{from}"},
	{Name: "give", Path: "/give/{from}"},
	{Name: "greed", Path: "/greed/{noun}/{from}"},
	{Name: "holygrail", Path: "/holygrail/{from}"},
	{Name: "horse", Path: "/horse/{from}"},
	{Name: "idea", Path: "/idea/{from}"},
	{Name: "immensity", Path: "/immensity/{from}"},
	{Name: "ing", Path: "/ing/{name}/{from}"},
	{Name: "jinglebells", Path: "/jinglebells/{from}"},
	{Name: "keep", Path: "/keep/{name}/{from}"},
	{Name: "keepcalm", Path: "/keepcalm/{reaction}/{from}"},
	{Name: "king", Path: "/king/{name}/{from}"},
	{Name: "legend", Path: "/legend/{name}/{from}"},
	{Name: "life", Path: "/life/{from}"},
	{Name: "linus", Path: "/linus/{name}/{from}"},
	{Name: "logs", Path: "/logs/{from}"},
	{Name: "look", Path: "/look/{name}/{from}"},
	{Name: "looking", Path: "/looking/{from}"},
	{Name: "madison", Path: "/madison/{name}/{from}"},
	{Name: "maybe", Path: "/maybe/{from}"},
	{Name: "me", Path: "/me/{from}"},
	{Name: "mornin", Path: "/mornin/{from}"},
	{Name: "no", Path: "/no/{from}"},
	{Name: "nugget", Path: "/nugget/{name}/{from}"},
	{Name: "off", Path: "/off/{name}/{from}"},
	{Name: "off-with", Path: "/off-with/{behavior}/{from}"},
	{Name: "outside", Path: "/outside/{name}/{from}"},
	{Name: "particular", Path: "/particular/{thing}/{from}"},
	{Name: "pink", Path: "/pink/{from}"},
	{Name: "problem", Path: "/problem/{name}/{from}"},
	{Name: "programmer", Path: "/programmer/{from}"},
	{Name: "pulp", Path: "/pulp/{language}/{from}"},
	{Name: "question", Path: "/question/{from}"},
	{Name: "ratsarse", Path: "/ratsarse/{from}"},
	{Name: "ridiculous", Path: "/ridiculous/{from}"},
	{Name: "rockstar", Path: "/rockstar/{name}/{from}"},
	{Name: "rtfm", Path: "/rtfm/{from}"},
	{Name: "sake", Path: "/sake/{from}"},
	{Name: "shakespeare", Path: "/shakespeare/{name}/{from}"},
	{Name: "shit", Path: "/shit/{from}"},
	{Name: "shutup", Path: "/shutup/{name}/{from}"},
	{Name: "single", Path: "/single/{from}"},
	{Name: "thanks", Path: "/thanks/{from}"},
	{Name: "that", Path: "/that/{from}"},
	{Name: "think", Path: "/think/{name}/{from}"},
	{Name: "thinking", Path: "/thinking/{name}/{from}"},
	{Name: "this", Path: "/this/{from}"},
	{Name: "thumbs", Path: "/thumbs/{name}/{from}"},
	{Name: "too", Path: "/too/{from}"},
	{Name: "tucker", Path: "/tucker/{from}"},
	{Name: "waste", Path: "/waste/{name}/{from}"},
	{Name: "what", Path: "/what/{from}"},
	{Name: "wtf", Path: "/wtf/{from}"},
	{Name: "xmas", Path: "/xmas/{name}/{from}"},
	{Name: "yoda", Path: "/yoda/{name}/{from}"},
	{Name: "you", Path: "/you/{name}/{from}"},
	{Name: "zayn", Path: "/zayn/{from}"},
	{Name: "zero", Path: "/zero/{from}"},
}
