package sqlinline

const QInsertTransaction = `--sql db25747c-0f0d-4a22-9f11-7e7c70282dfc
insert into transactions(
  type, description, amount, currency,
  net_amount_in_collective_currency, txn_currency,
  txn_currency_fx_rate, amount_in_txn_currency,
  payment_processor_fee_in_txn_currency,
  host_fee_in_txn_currency, platform_fee_in_txn_currency,
  expense_id, user_id, collective_id, host_id,
  created_at)
values ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, now())
returning id, created_at;
`

const QListTransactionsByCollectives = `--sql 8de5723a-30ca-49a2-b86e-08faad1252b1
select id, type, description, amount, currency,
       net_amount_in_collective_currency, txn_currency,
       txn_currency_fx_rate, amount_in_txn_currency,
       payment_processor_fee_in_txn_currency,
       host_fee_in_txn_currency, platform_fee_in_txn_currency,
       net_amount_in_txn_currency,
       expense_id, user_id, collective_id, host_id, payment_method_id,
       created_at
from transactions
where collective_id = any($1::bigint[])
  and created_at >= $2
  and created_at < $3
order by created_at desc
limit nullif($4::int, 0);
`

const QListTransactionsByCollectivesExpanded = `--sql 3d15e4ab-3620-457a-a8fd-c8cbeadb2455
select t.id, t.type, t.description, t.amount, t.currency,
       t.net_amount_in_collective_currency, t.txn_currency,
       t.txn_currency_fx_rate, t.amount_in_txn_currency,
       t.payment_processor_fee_in_txn_currency,
       t.host_fee_in_txn_currency, t.platform_fee_in_txn_currency,
       t.net_amount_in_txn_currency,
       t.expense_id, t.user_id, t.collective_id, t.host_id, t.payment_method_id,
       t.created_at,
       u.first_name, u.last_name, u.email, u.image,
       c.slug, c.name, c.image
from transactions t
join users u on u.id = t.user_id
join collectives c on c.id = t.collective_id
where t.collective_id = any($1::bigint[])
  and t.created_at >= $2
  and t.created_at < $3
order by t.created_at desc
limit nullif($4::int, 0);
`

const QAttachPaymentMethod = `--sql 2a86a062-2ca1-41b2-aed4-594ac2ed8b60
update transactions
set payment_method_id = $2
where id = $1;
`
