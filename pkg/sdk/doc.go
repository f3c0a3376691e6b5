// Package ftfacade runs the catalog search façade in-process, without the HTTP layer.
//
// It talks to a RediSearch-compatible engine (Redis Stack, Redis 8) and offers the same
// operations as the HTTP service: highlighted full-text search, product autocomplete and
// bulk indexing of generated catalog documents.
//
//	client, err := ftfacade.New(ctx, ftfacade.WithRedis("localhost:6379", ""))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	report, _ := client.Index(ctx, 1000)
//	hits, _ := client.Search(ctx, "widget")
//	names, _ := client.Suggest(ctx, "wid")
//
// Engines without FT.ADD (Redis 8) need hash writes:
//
//	ftfacade.New(ctx, ftfacade.WithRedis(addr, ""), ftfacade.WithHashMode("doc:"))
package ftfacade
